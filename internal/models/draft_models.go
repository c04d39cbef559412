package models

// RawDraftPick is an authoritative upstream pick before snake arithmetic is
// applied. Only the overall pick number is trusted for ordering; upstream
// team indexes are not guaranteed to follow draft order.
type RawDraftPick struct {
	OverallPick int
	RosterID    int
	PlayerID    string
}

// DraftPick is one canonical draft selection. Reconstructed is true when the
// pick was back-calculated from final rosters rather than taken from an
// authoritative pick list.
type DraftPick struct {
	OverallPick   int
	Round         int
	DraftSlot     int
	RosterID      int
	PlayerID      string
	PlayerName    string
	Reconstructed bool
}
