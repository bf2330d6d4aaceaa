package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/hibiken/asynq"

	"tubebrief/internal/db"
	"tubebrief/internal/news"
	"tubebrief/internal/orchestrator"
	"tubebrief/pkg/tasks"
)

// NewsDigester produces the daily financial news digest.
type NewsDigester interface {
	TodaysNewsDigest(ctx context.Context) (string, error)
}

// TaskHandler wires the queue to the orchestrator and the news digest.
type TaskHandler struct {
	store       *db.Store
	orch        *orchestrator.Orchestrator
	digester    NewsDigester
	headlines   *news.Aggregator
	sender      orchestrator.Sender
	asynqClient tasks.TaskEnqueuer
}

func NewTaskHandler(store *db.Store, orch *orchestrator.Orchestrator, digester NewsDigester,
	headlines *news.Aggregator, sender orchestrator.Sender, client tasks.TaskEnqueuer) *TaskHandler {
	return &TaskHandler{
		store:       store,
		orch:        orch,
		digester:    digester,
		headlines:   headlines,
		sender:      sender,
		asynqClient: client,
	}
}

// HandleCheckAllChannelsTask fans the periodic sweep out into one task per
// active channel so a slow channel does not delay the others.
func (h *TaskHandler) HandleCheckAllChannelsTask(ctx context.Context, t *asynq.Task) error {
	log.Println("Checking all channels...")

	channels, err := h.store.GetAllChannels(true)
	if err != nil {
		return fmt.Errorf("failed to get channels: %w", err)
	}

	for _, ch := range channels {
		task, err := tasks.NewCheckChannelTask(ch.Handle)
		if err != nil {
			log.Printf("failed to create check task for %s: %v", ch.Handle, err)
			continue
		}
		if _, err := h.asynqClient.Enqueue(task); err != nil {
			log.Printf("failed to enqueue check task for %s: %v", ch.Handle, err)
			continue
		}
	}

	log.Println("Finished checking all channels.")
	return nil
}

// HandleCheckChannelTask runs the pipeline for one channel.
func (h *TaskHandler) HandleCheckChannelTask(ctx context.Context, t *asynq.Task) error {
	var p tasks.CheckChannelTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	channel, err := h.store.GetChannel(p.ChannelHandle)
	if err != nil {
		return fmt.Errorf("failed to get channel %s: %w", p.ChannelHandle, err)
	}
	if channel == nil {
		// The channel was removed after the sweep enqueued this task.
		log.Printf("Channel %s no longer exists, dropping task", p.ChannelHandle)
		return nil
	}

	return h.orch.ProcessChannel(ctx, *channel)
}

// HandleNewsDigestTask generates the financial news digest and delivers it
// to every user who opted in.
func (h *TaskHandler) HandleNewsDigestTask(ctx context.Context, t *asynq.Task) error {
	recipients, err := h.store.GetNewsRecipients()
	if err != nil {
		return fmt.Errorf("failed to get news recipients: %w", err)
	}
	if len(recipients) == 0 {
		log.Println("No users subscribed to news, skipping digest")
		return nil
	}

	digest, err := h.digester.TodaysNewsDigest(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate news digest: %w", err)
	}

	var b strings.Builder
	b.WriteString("📰 Resumen de noticias financieras\n\n")
	b.WriteString(digest)
	if h.headlines != nil {
		if block := news.FormatHeadlines(h.headlines.TopHeadlines(ctx, 5)); block != "" {
			b.WriteString("\n\n")
			b.WriteString(block)
		}
	}

	results := h.sender.SendToMany(b.String(), recipients)
	for chatID, ok := range results {
		if !ok {
			log.Printf("Failed to deliver news digest to %s", chatID)
		}
	}

	log.Printf("News digest sent to %d users", len(recipients))
	return nil
}
