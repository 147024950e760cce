package service

import "rpc-speed-bot/internal/domain/entity"

// Reporter renders a snapshot for an operator.
type Reporter interface {
	Render(snapshot entity.Snapshot) error
}
