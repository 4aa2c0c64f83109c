package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// pollWait is the long-poll timeout sent to getUpdates, in seconds.
const pollWait = 30

// maxPollBackoff caps the exponent used between failed polls.
const maxPollBackoff = 5

// CommandHandler is called when a user command is received. An empty reply
// sends nothing.
type CommandHandler func(command string) string

type telegramUpdate struct {
	UpdateID int              `json:"update_id"`
	Message  *telegramMessage `json:"message"`
}

type telegramMessage struct {
	Text string `json:"text"`
	Chat struct {
		ID int64 `json:"id"`
	} `json:"chat"`
}

type updatesResponse struct {
	OK          bool             `json:"ok"`
	Description string           `json:"description"`
	Result      []telegramUpdate `json:"result"`
}

// StartPolling long-polls getUpdates and answers commands from the configured
// chat. Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	client := t.pollClient()
	offset, failures := 0, 0

	for ctx.Err() == nil {
		updates, err := t.fetchUpdates(ctx, client, offset)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			delay := t.retryDelay(min(failures, maxPollBackoff))
			failures++
			log.Printf("[WARN] telegram getUpdates failed (%d in a row), retrying in %v: %v", failures, delay, err)
			if !sleepCtx(ctx, delay) {
				break
			}
			continue
		}
		failures = 0

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			t.dispatch(ctx, u, handler)
		}
	}
	log.Println("[INFO] Telegram polling stopped")
}

// pollClient outlives the long-poll window and shares the send transport.
func (t *TelegramNotifier) pollClient() *http.Client {
	c := &http.Client{Timeout: (pollWait + 5) * time.Second}
	if t.Client != nil {
		c.Transport = t.Client.Transport
	}
	return c
}

func (t *TelegramNotifier) fetchUpdates(ctx context.Context, client *http.Client, offset int) ([]telegramUpdate, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("timeout", strconv.Itoa(pollWait))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpoint("getUpdates")+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build getUpdates request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body updatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode getUpdates (status %d): %w", resp.StatusCode, err)
	}
	if !body.OK {
		return nil, fmt.Errorf("getUpdates rejected (status %d): %s", resp.StatusCode, body.Description)
	}
	return body.Result, nil
}

// dispatch runs one update through handler. Messages from other chats are
// dropped.
func (t *TelegramNotifier) dispatch(ctx context.Context, u telegramUpdate, handler CommandHandler) {
	if u.Message == nil {
		return
	}
	text := strings.TrimSpace(u.Message.Text)
	if text == "" {
		return
	}
	if from := strconv.FormatInt(u.Message.Chat.ID, 10); t.ChatID != "" && from != t.ChatID {
		log.Printf("[WARN] ignoring command from chat %s", from)
		return
	}

	log.Printf("[INFO] received command: %s", text)
	reply := handler(text)
	if reply == "" {
		return
	}
	if err := t.SendWithRetry(ctx, reply, 2); err != nil {
		log.Printf("[ERROR] send reply to %q: %v", text, err)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
