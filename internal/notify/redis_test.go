package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeList struct {
	key    string
	values []interface{}
	err    error
}

func (f *fakeList) LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	f.key = key
	f.values = append(f.values, values...)
	cmd.SetVal(int64(len(f.values)))
	return cmd
}

func TestRedisOutbox_Send(t *testing.T) {
	list := &fakeList{}
	outbox := NewRedisOutbox(list, "docshare:outbox:share")

	err := outbox.Send(context.Background(), Notification{Recipient: "a@example.com", Link: "http://x/view/d1-t", DocumentID: "d1"})

	require.NoError(t, err)
	assert.Equal(t, "docshare:outbox:share", list.key)
	require.Len(t, list.values, 1)

	var got Notification
	require.NoError(t, json.Unmarshal(list.values[0].([]byte), &got))
	assert.Equal(t, "a@example.com", got.Recipient)
	assert.Equal(t, "http://x/view/d1-t", got.Link)
}

func TestRedisOutbox_SendError(t *testing.T) {
	outbox := NewRedisOutbox(&fakeList{err: errors.New("READONLY")}, "k")

	err := outbox.Send(context.Background(), Notification{Recipient: "a@example.com"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "enqueue notification")
}
