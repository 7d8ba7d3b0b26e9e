package notification

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// MelodyService broadcast sự kiện tới dashboard qua websocket
type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) Name() string { return "websocket" }

func (s *MelodyService) Send(ctx context.Context, event Event) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.m.Broadcast(data)
}
