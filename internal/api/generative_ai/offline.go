package generativeAI

import (
	"context"
	"errors"
	"fmt"

	"github.com/jiamizhongshifu/xiaozhou/internal/itinerary"
	"github.com/jiamizhongshifu/xiaozhou/internal/types"
)

// ErrNeedsTripParameters is returned when the offline generator is asked for
// free text; it can only draft from structured trip parameters.
var ErrNeedsTripParameters = errors.New("offline generator needs trip parameters")

// OfflineGenerator drafts itineraries locally from the destination tables.
type OfflineGenerator struct{}

func (OfflineGenerator) GenerateText(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: %w", types.ErrGenerationFailed, ErrNeedsTripParameters)
}

func (OfflineGenerator) DraftItinerary(ctx context.Context, params types.TripParameters) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return itinerary.Draft(params), nil
}
