package targetfile

import (
	"fmt"
	"strings"

	dto "rpc-speed-bot/internal/adapter/storage/targetfile/dto"
	"rpc-speed-bot/internal/domain/entity"
	"rpc-speed-bot/internal/pkg/apperrors"
)

// toDomainTargets validates raw entries and converts them to targets, keeping file order.
func toDomainTargets(rawTargets []dto.TargetRaw) ([]entity.Target, error) {
	targets := make([]entity.Target, 0, len(rawTargets))
	seen := make(map[string]int, len(rawTargets))
	for i, raw := range rawTargets {
		if raw.Name == nil || strings.TrimSpace(*raw.Name) == "" {
			return nil, fmt.Errorf("%w: entry %d: name is required", apperrors.ErrInvalidInput, i)
		}
		name := *raw.Name
		if raw.RPC == nil {
			return nil, fmt.Errorf("%w: entry %d (%s): rpc is required", apperrors.ErrInvalidInput, i, name)
		}
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: entry %d: name %q already used by entry %d",
				apperrors.ErrInvalidInput, i, name, prev)
		}
		seen[name] = i

		endpoint, err := entity.NewRPCURL(*raw.RPC)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d (%s): %v", apperrors.ErrInvalidInput, i, name, err)
		}

		target := entity.Target{Name: name, Endpoint: endpoint}
		if raw.SuccessCount != nil {
			target.SuccessCount = *raw.SuccessCount
		}
		if raw.FailedCount != nil {
			target.FailedCount = *raw.FailedCount
		}
		targets = append(targets, target)
	}
	return targets, nil
}
