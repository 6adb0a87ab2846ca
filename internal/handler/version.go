package handler

import (
	"github.com/emberwild/server/internal/net"
	"github.com/emberwild/server/internal/net/packet"
)

// ProtocolVersion is bumped whenever the wire format changes.
const ProtocolVersion = 3

// HandleVersion processes C_VERSION: the client announces its protocol
// version and the server accepts or drops the connection.
func HandleVersion(sess *net.Session, r *packet.Reader, deps *Deps) {
	clientVersion := r.ReadD()

	w := packet.NewWriterWithOpcode(packet.S_OPCODE_VERSION_OK)
	if clientVersion == ProtocolVersion {
		w.WriteC(1)
		w.WriteD(int32(deps.Config.Server.ID))
		sess.Send(w.Bytes())
		return
	}

	w.WriteC(0)
	w.WriteD(ProtocolVersion)
	sess.Send(w.Bytes())
	sess.FlushOutput()
	sess.Close()
}
