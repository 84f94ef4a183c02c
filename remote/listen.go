package remote

import (
	"context"
	"log/slog"

	"github.com/nobonobo/rtcconnect/node"
	"github.com/pion/webrtc/v4"
)

// Listen accepts pad connections for host id until ctx is cancelled. Every
// data channel message is routed as a key event.
func Listen(ctx context.Context, id string, router *Router) error {
	host := node.NewHost(id)
	host.OnConnected = func(peer *node.Node) {
		peerID := peer.ID()
		peer.PeerConnection().OnDataChannel(func(dc *webrtc.DataChannel) {
			slog.Info("Pad connected",
				slog.String("peer", peerID),
				slog.String("channel", dc.Label()),
			)
			dc.OnClose(func() {
				slog.Info("Pad disconnected",
					slog.String("peer", peerID),
				)
				router.Drop(peerID)
			})
			dc.OnMessage(func(msg webrtc.DataChannelMessage) {
				router.Dispatch(peerID, msg.Data)
			})
		})
	}

	slog.Info("Listening for pads",
		slog.String("id", host.ID()),
	)
	defer slog.Info("Stopped listening for pads",
		slog.String("id", host.ID()),
	)
	return host.Listen(ctx)
}
