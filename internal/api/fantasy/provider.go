// Package fantasy declares the contracts the aggregation core consumes from
// the upstream platform clients. Each platform package converts its raw
// payloads into the canonical model before returning from these methods.
package fantasy

import (
	"context"

	"github.com/tomfleet/leaguesync/internal/models"
)

// Provider is implemented once per upstream platform.
type Provider interface {
	Platform() models.Platform

	FetchLeague(ctx context.Context, leagueID string) (*models.League, error)
	FetchRosters(ctx context.Context, leagueID string) ([]models.Roster, error)
	FetchUsers(ctx context.Context, leagueID string) ([]models.LeagueUser, error)

	// FetchMatchups returns the week's pairing schedule. fferr.ErrNotFound
	// means the league has no head-to-head schedule at all, which signals an
	// alternative competition format rather than an error.
	FetchMatchups(ctx context.Context, leagueID string, week int) ([]models.MatchupSlot, error)

	// FetchDraftPicks returns the authoritative pick list when the platform
	// has one; fferr.ErrNotFound when it does not.
	FetchDraftPicks(ctx context.Context, leagueID string) ([]models.RawDraftPick, error)

	// ResolveUserIdentity maps a stored credential (username or member GUID)
	// to the platform user ID. fferr.ErrUnsupported when the platform has no
	// such lookup.
	ResolveUserIdentity(ctx context.Context, credential string) (string, error)
}

// PlayerDirectory resolves canonical player IDs. Lookup returns
// fferr.ErrNotFound for players absent from the directory.
type PlayerDirectory interface {
	LookupPlayer(ctx context.Context, playerID string) (*models.PlayerRecord, error)
}

// StatsSource fetches the raw weekly stat table the scoring engine consumes.
// The stat cache is the only intended caller.
type StatsSource interface {
	FetchWeeklyStats(ctx context.Context, week int, season string) (models.StatTable, error)
}
