// Package draft produces canonical, ordered draft pick lists. When the
// platform has an authoritative pick list the snake slot is recalculated from
// the overall pick number; when it does not, picks are back-calculated from
// final rosters.
package draft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/tomfleet/leaguesync/internal/api/fantasy"
	"github.com/tomfleet/leaguesync/internal/fferr"
	"github.com/tomfleet/leaguesync/internal/models"
)

type Reconstructor struct {
	provider  fantasy.Provider
	directory fantasy.PlayerDirectory
}

func NewReconstructor(provider fantasy.Provider, directory fantasy.PlayerDirectory) *Reconstructor {
	return &Reconstructor{provider: provider, directory: directory}
}

// Reconstruct returns the league's draft in overall pick order. Authoritative
// upstream picks are preferred; roster back-calculation is the fallback when
// the platform has no pick list.
func (r *Reconstructor) Reconstruct(ctx context.Context, league *models.League) ([]models.DraftPick, error) {
	raw, err := r.provider.FetchDraftPicks(ctx, league.ID)
	if err != nil && !errors.Is(err, fferr.ErrNotFound) {
		return nil, fmt.Errorf("reconstructing draft for league %s: %w", league.ID, err)
	}
	if len(raw) > 0 {
		return r.fromAuthoritative(ctx, league, raw)
	}

	rosters, err := r.provider.FetchRosters(ctx, league.ID)
	if err != nil {
		return nil, fmt.Errorf("reconstructing draft for league %s: %w", league.ID, err)
	}
	return r.fromRosters(ctx, league, rosters)
}

// SlotForPick converts an overall pick number into its snake round and slot.
// Upstream team indexes are not trusted; teams are not guaranteed to be
// indexed in draft order.
func SlotForPick(pick, teamCount int) (round, slot int) {
	round = (pick-1)/teamCount + 1
	offset := (pick - 1) % teamCount
	if round%2 == 1 {
		slot = offset + 1
	} else {
		slot = teamCount - offset
	}
	return round, slot
}

// PickForSlot inverts SlotForPick for a draft position within a round.
func PickForSlot(round, slot, teamCount int) int {
	if round%2 == 1 {
		return (round-1)*teamCount + slot
	}
	return (round-1)*teamCount + (teamCount - slot + 1)
}

func (r *Reconstructor) fromAuthoritative(ctx context.Context, league *models.League, raw []models.RawDraftPick) ([]models.DraftPick, error) {
	sort.Slice(raw, func(i, j int) bool {
		return raw[i].OverallPick < raw[j].OverallPick
	})

	teamCount := league.TeamCount
	if teamCount == 0 {
		// Some league payloads arrive without a size; count the distinct
		// teams that actually drafted instead.
		seen := make(map[int]struct{}, len(raw))
		for _, p := range raw {
			seen[p.RosterID] = struct{}{}
		}
		teamCount = len(seen)
	}

	picks := make([]models.DraftPick, 0, len(raw))
	dropped := 0
	for _, p := range raw {
		record, err := r.directory.LookupPlayer(ctx, p.PlayerID)
		if err != nil {
			// A pick whose player is missing from the directory is dropped
			// rather than emitted with empty player fields.
			if errors.Is(err, fferr.ErrNotFound) {
				dropped++
				slog.Warn("Dropping draft pick with unresolvable player",
					"league", league.ID, "pick", p.OverallPick, "player", p.PlayerID)
				continue
			}
			return nil, fmt.Errorf("resolving player for pick %d: %w", p.OverallPick, err)
		}

		round, slot := SlotForPick(p.OverallPick, teamCount)
		picks = append(picks, models.DraftPick{
			OverallPick:   p.OverallPick,
			Round:         round,
			DraftSlot:     slot,
			RosterID:      p.RosterID,
			PlayerID:      p.PlayerID,
			PlayerName:    record.FullName,
			Reconstructed: false,
		})
	}

	if dropped > 0 {
		slog.Warn("Draft reconstruction dropped picks",
			"league", league.ID, "dropped", dropped, "kept", len(picks))
	}
	return picks, nil
}

// fromRosters synthesizes picks from final roster order, assuming roster slot
// index approximates the round a player was taken in. Draft positions are
// assigned by roster ID so the output is reproducible across refreshes.
func (r *Reconstructor) fromRosters(ctx context.Context, league *models.League, rosters []models.Roster) ([]models.DraftPick, error) {
	sort.Slice(rosters, func(i, j int) bool {
		return rosters[i].ID < rosters[j].ID
	})

	teamCount := league.TeamCount
	if teamCount == 0 {
		teamCount = len(rosters)
	}

	var picks []models.DraftPick
	for position, roster := range rosters {
		for i, playerID := range roster.Players {
			round := i + 1
			name := ""
			if record, err := r.directory.LookupPlayer(ctx, playerID); err == nil {
				name = record.FullName
			}

			overall := PickForSlot(round, position+1, teamCount)
			pickRound, slot := SlotForPick(overall, teamCount)
			picks = append(picks, models.DraftPick{
				OverallPick:   overall,
				Round:         pickRound,
				DraftSlot:     slot,
				RosterID:      roster.ID,
				PlayerID:      playerID,
				PlayerName:    name,
				Reconstructed: true,
			})
		}
	}

	sort.Slice(picks, func(i, j int) bool {
		return picks[i].OverallPick < picks[j].OverallPick
	})
	return picks, nil
}
