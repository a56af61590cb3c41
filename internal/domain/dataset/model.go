package dataset

import (
	"fmt"
	"time"

	"github.com/riskibarqy/football-performance/internal/platform/table"
)

// Dataset is an uploaded wide match table.
type Dataset struct {
	ID        string
	Name      string
	Columns   []string
	RowCount  int
	HasPrefix bool
	// MissingPairs names the important metrics lacking a home_ or away_ column.
	MissingPairs []string
	UploadedAt   time.Time
	Wide         table.Table
}

func (d Dataset) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("dataset id is required")
	}
	if d.Name == "" {
		return fmt.Errorf("dataset name is required")
	}
	if !d.Wide.Valid() {
		return fmt.Errorf("dataset table is required")
	}

	return nil
}
