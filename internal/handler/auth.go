package handler

import (
	"context"
	"strings"
	"time"

	"github.com/emberwild/server/internal/net"
	"github.com/emberwild/server/internal/net/packet"
	"go.uber.org/zap"
)

// AutoCreateAccounts registers unknown accounts on first login.
// Kept on so fresh installs need no out-of-band provisioning.
const AutoCreateAccounts = true

// HandleLogin processes C_LOGIN: [account\0][password\0].
func HandleLogin(sess *net.Session, r *packet.Reader, deps *Deps) {
	accountName := strings.ToLower(strings.TrimSpace(r.ReadS()))
	password := r.ReadS()

	if accountName == "" || password == "" {
		sendLoginResult(sess, packet.LoginBadCredential)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	account, err := deps.AccountRepo.Load(ctx, accountName)
	if err != nil {
		deps.Log.Error("account load failed", zap.String("account", accountName), zap.Error(err))
		sendLoginResult(sess, packet.LoginError)
		return
	}

	if account == nil {
		if !AutoCreateAccounts {
			sendLoginResult(sess, packet.LoginBadCredential)
			return
		}
		account, err = deps.AccountRepo.Create(ctx, accountName, password)
		if err != nil {
			deps.Log.Error("account create failed", zap.String("account", accountName), zap.Error(err))
			sendLoginResult(sess, packet.LoginError)
			return
		}
		deps.Log.Info("account auto-created", zap.String("account", accountName))
	} else {
		if account.Banned {
			sendLoginResult(sess, packet.LoginBadCredential)
			sess.FlushOutput()
			sess.Close()
			return
		}
		if !deps.AccountRepo.ValidatePassword(account.PasswordHash, password) {
			deps.Log.Warn("wrong password", zap.String("account", accountName), zap.String("ip", sess.IP))
			sendLoginResult(sess, packet.LoginBadCredential)
			return
		}
	}

	// One connection per account
	if account.Online {
		sendLoginResult(sess, packet.LoginAlreadyOn)
		return
	}

	if err := deps.AccountRepo.SetOnline(ctx, accountName, true); err != nil {
		deps.Log.Error("set online failed", zap.String("account", accountName), zap.Error(err))
	}
	if err := deps.AccountRepo.UpdateLastActive(ctx, accountName); err != nil {
		deps.Log.Error("update last active failed", zap.String("account", accountName), zap.Error(err))
	}

	sess.AccountName = accountName
	sess.SetState(packet.StateAuthenticated)

	deps.Log.Info("login ok", zap.String("account", accountName), zap.Uint64("session", sess.ID))
	sendLoginResult(sess, packet.LoginOK)
}

func sendLoginResult(sess *net.Session, code byte) {
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_LOGIN_RESULT)
	w.WriteC(code)
	sess.Send(w.Bytes())
}
