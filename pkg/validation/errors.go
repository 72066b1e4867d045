package validation

import (
	"errors"

	"github.com/lintang-b-s/tdnavigator/pkg/timetable"
)

var (
	ErrDegenerateInput   = errors.New("similarity needs a non-empty route and at least one historical route")
	ErrUnknownConnection = timetable.ErrUnknownConnection
	ErrShortRoute        = errors.New("route needs at least one vertex")
)
