package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/fplcups/minileague/internal/domain/scoring"
)

// ScoreRepository reads the historical score table from a weeks file:
// a header row naming the team column followed by numeric week columns,
// then one row per team with "points:hits" cells. Malformed or absent
// cells default to zero.
type ScoreRepository struct {
	path string
}

func NewScoreRepository(path string) *ScoreRepository {
	return &ScoreRepository{path: path}
}

func (r *ScoreRepository) LoadTable(ctx context.Context) (*scoring.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open score file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read score file %s: %w", r.path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("score file %s has no header row", r.path)
	}

	// Week numbers come from the header; non-numeric columns are
	// skipped so extra metadata columns cannot shift the grid.
	header := records[0]
	weekByColumn := make(map[int]int, len(header))
	for col := 1; col < len(header); col++ {
		week, err := strconv.Atoi(header[col])
		if err != nil || week < 1 {
			continue
		}
		weekByColumn[col] = week
	}

	table := scoring.NewTable()
	for _, row := range records[1:] {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		team := row[0]
		for col := 1; col < len(row); col++ {
			week, ok := weekByColumn[col]
			if !ok {
				continue
			}
			points, hits := scoring.ParseCell(row[col])
			table.Set(scoring.WeeklyScore{Team: team, Week: week, Points: points, Hits: hits})
		}
	}
	return table, nil
}
