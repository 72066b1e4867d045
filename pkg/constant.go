package pkg

const (
	INF_WEIGHT float64 = 1e15

	// historical routes sharing at least this fraction of the computed route's vertices count as similar
	ROUTE_SIMILARITY_THRESHOLD = 0.75

	// usage percentages below this value leave the predicted duration untouched
	DEFAULT_DISCOUNT_THRESHOLD = 0.0

	// the deployment the hourly validation ran against used 0.40
	LEGACY_DISCOUNT_THRESHOLD = 0.40

	USAGE_PERCENTAGE_PRECISION = 4
	HOURS_PER_DAY              = 24
)

type DiscountMode uint8

const (
	// usage percentages computed from the routes observed in the query's hour
	HOURLY_DISCOUNT DiscountMode = iota
	// usage percentages computed from every observed route
	GLOBAL_DISCOUNT
)

func GetDiscountMode(mode string) DiscountMode {
	switch mode {
	case "global", "all":
		return GLOBAL_DISCOUNT
	default:
		return HOURLY_DISCOUNT
	}
}

func (m DiscountMode) String() string {
	switch m {
	case GLOBAL_DISCOUNT:
		return "global"
	default:
		return "hourly"
	}
}
