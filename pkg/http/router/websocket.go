package router

import (
	"net"
	"net/http"
	"time"

	"github.com/gobwas/ws"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// handleWebsocket upgrades the request and streams route queries on the connection until the client leaves.
func (api *API) handleWebsocket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, _, hs, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("remote", r.RemoteAddr))
		return
	}

	// the server's read/write deadlines would otherwise cut long-lived connections
	_ = conn.SetDeadline(time.Time{})

	api.log.Info("established websocket connection", zap.String("connection name", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := api.hub.Register(conn)
	go api.hub.Serve(user)
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
