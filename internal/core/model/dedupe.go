package model

// DuplicatePair names a later FAQ entry that can never be returned because an
// earlier one always wins over it.
type DuplicatePair struct {
	Kept      int    `json:"kept"`      // store index of the entry that wins
	Duplicate int    `json:"duplicate"` // store index of the unreachable entry
	Reason    string `json:"reason"`
}
