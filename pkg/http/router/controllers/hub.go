package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/tdnavigator/pkg/util"
	"go.uber.org/zap"
)

// User is one websocket client streaming route queries.
type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

func (u *User) readRequest() (*shortestPathRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &shortestPathRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

// ComputeRoute answers one route query read from the connection. Query errors are written back to
// the client; only connection errors are returned.
func (u *User) ComputeRoute() error {
	req, err := u.readRequest()
	if err != nil {
		return err
	}
	if req == nil {
		return nil
	}

	req.Timestamp = strings.TrimSpace(req.Timestamp)
	req.Source = strings.TrimSpace(req.Source)
	req.Target = strings.TrimSpace(req.Target)
	if err := u.hub.validator.Struct(req); err != nil {
		return u.writeError(http.StatusBadRequest, err.Error())
	}

	res, err := u.hub.routingService.ShortestPath(req.Timestamp, req.Source, req.Target)
	if err != nil {
		status := statusCode(err)
		msg := err.Error()
		if status == http.StatusInternalServerError {
			u.hub.log.Error("websocket route query failed", zap.Error(err))
			msg = util.MessageInternalServerError
		}
		return u.writeError(status, msg)
	}

	return u.write(envelope{"data": NewShortestPathResponse(res)})
}

func (u *User) writeError(status int, message string) error {
	return u.write(envelope{"error": map[string]string{
		"code":    http.StatusText(status),
		"message": message,
	}})
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

type Hub struct {
	mu  sync.RWMutex
	seq uint
	us  []*User
	ns  map[uint]*User

	routingService RoutingService
	validator      *requestValidator
	log            *zap.Logger
}

func NewHub(routingService RoutingService, log *zap.Logger) *Hub {
	return &Hub{
		ns:             make(map[uint]*User),
		us:             make([]*User, 0),
		routingService: routingService,
		validator:      newRequestValidator(),
		log:            log,
	}
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.us = append(h.us, user)

	h.seq++
	h.mu.Unlock()

	return user
}

// Serve answers queries from user until the connection fails or closes, then removes the user.
func (h *Hub) Serve(user *User) {
	defer h.Remove(user)
	for {
		if err := user.ComputeRoute(); err != nil {
			var closed wsutil.ClosedError
			if !errors.As(err, &closed) && !errors.Is(err, io.EOF) {
				h.log.Info("websocket connection dropped", zap.Uint("user", user.id), zap.Error(err))
			}
			return
		}
	}
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.ns[user.id]; !ok {
		return
	}
	delete(h.ns, user.id)
	_ = user.conn.Close()

	// ids are handed out in increasing order, so us stays sorted by id
	i := sort.Search(len(h.us), func(i int) bool {
		return h.us[i].id >= user.id
	})

	newUs := make([]*User, len(h.us)-1)
	copy(newUs[:i], h.us[:i])
	copy(newUs[i:], h.us[i+1:])
	h.us = newUs
}

func (h *Hub) NumberOfUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.us)
}

func (h *Hub) RemoveAllUser() {
	h.mu.RLock()
	users := make([]*User, len(h.us))
	copy(users, h.us)
	h.mu.RUnlock()

	for _, user := range users {
		h.Remove(user)
	}
}
