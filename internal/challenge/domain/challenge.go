// Package domain holds the challenge catalog entry type.
package domain

// MachineCategoryID is the sentinel category id used for machines, which have
// no native category in the HTB feed.
const MachineCategoryID = 100

// Challenge is one catalog entry: an HTB challenge or machine known to the store.
type Challenge struct {
	ID            string
	HTBID         int64
	Name          string
	Difficulty    string
	Points        int64
	ReleaseDate   string
	CategoryID    int64
	MachineAvatar *string
}
