package sync

import (
	"daily-planner/drive"

	"golang.org/x/oauth2"
)

// ==================== TOKEN REFRESH MANAGEMENT ====================

// TokenReporter exposes the current (possibly refreshed) OAuth token of a mirror connection
type TokenReporter interface {
	GetCurrentToken() (*oauth2.Token, error)
}

type tokenWatch struct {
	reporter TokenReporter
	last     *oauth2.Token
	save     func(*oauth2.Token) error
}

// WatchToken makes the worker call save whenever the reporter's token
// differs from the last one seen, starting from original
func (w *Worker) WatchToken(reporter TokenReporter, original *oauth2.Token, save func(*oauth2.Token) error) {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	w.token = &tokenWatch{reporter: reporter, last: original, save: save}
}

// updateTokenIfRefreshed persists the token if it was refreshed during a run
func (w *Worker) updateTokenIfRefreshed() {
	if w.token == nil {
		return
	}

	current, err := w.token.reporter.GetCurrentToken()
	if err != nil || current == nil {
		return
	}

	// Only update if the token actually changed
	if !drive.TokenChanged(w.token.last, current) {
		return
	}

	w.logger.Info("token was refreshed, saving")
	if err := w.token.save(current); err != nil {
		w.logger.Error("failed to save refreshed token", "error", err)
		return
	}
	w.token.last = current
}
