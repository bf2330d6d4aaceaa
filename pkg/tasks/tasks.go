package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TypeCheckAllChannels = "channels:check_all"
	TypeCheckChannel     = "channel:check"
	TypeNewsDigest       = "news:digest"
)

type CheckChannelTaskPayload struct {
	ChannelHandle string
}

func NewCheckChannelTask(channelHandle string) (*asynq.Task, error) {
	payload, err := json.Marshal(CheckChannelTaskPayload{ChannelHandle: channelHandle})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCheckChannel, payload), nil
}

func NewCheckAllChannelsTask() (*asynq.Task, error) {
	return asynq.NewTask(TypeCheckAllChannels, nil), nil
}

func NewNewsDigestTask() (*asynq.Task, error) {
	return asynq.NewTask(TypeNewsDigest, nil), nil
}
