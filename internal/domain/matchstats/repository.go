package matchstats

import "context"

// StoredTeamMatch is a TeamMatch persisted under the dataset it came from.
// RowIndex is its position in the long table.
type StoredTeamMatch struct {
	DatasetID string
	RowIndex  int
	TeamMatch
}

// Repository describes team-match persistence needs from use cases.
type Repository interface {
	// ReplaceDataset atomically swaps every stored row of datasetID for rows.
	ReplaceDataset(ctx context.Context, datasetID string, rows []StoredTeamMatch) error
	ListByDataset(ctx context.Context, datasetID string) ([]StoredTeamMatch, error)
	ListByDatasetAndTeam(ctx context.Context, datasetID, team string) ([]StoredTeamMatch, error)
}
