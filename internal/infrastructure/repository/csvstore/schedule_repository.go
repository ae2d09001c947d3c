package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/sourcegraph/conc/pool"

	"github.com/fplcups/minileague/internal/domain/schedule"
)

const scheduleFilePrefix = "tournament_"

// ScheduleRepository stores one schedule file per cup in a data
// directory, named tournament_<cup>.csv with a Week,Team1,Team2 header.
type ScheduleRepository struct {
	dir string
}

func NewScheduleRepository(dir string) *ScheduleRepository {
	return &ScheduleRepository{dir: dir}
}

func (r *ScheduleRepository) filePath(cupNumber int) string {
	return filepath.Join(r.dir, fmt.Sprintf("%s%d.csv", scheduleFilePrefix, cupNumber))
}

func (r *ScheduleRepository) GetByCup(ctx context.Context, cupNumber int) (schedule.Schedule, bool, error) {
	if err := ctx.Err(); err != nil {
		return schedule.Schedule{}, false, err
	}

	f, err := os.Open(r.filePath(cupNumber))
	if os.IsNotExist(err) {
		return schedule.Schedule{}, false, nil
	}
	if err != nil {
		return schedule.Schedule{}, false, fmt.Errorf("open schedule file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 3
	records, err := reader.ReadAll()
	if err != nil {
		return schedule.Schedule{}, false, fmt.Errorf("read schedule file for cup %d: %w", cupNumber, err)
	}
	if len(records) == 0 {
		return schedule.Schedule{}, false, fmt.Errorf("schedule file for cup %d has no header row", cupNumber)
	}

	fixtures := make([]schedule.Fixture, 0, len(records)-1)
	seen := make(map[string]bool)
	teams := make([]string, 0)
	for i, row := range records[1:] {
		week, err := strconv.Atoi(row[0])
		if err != nil || week < 1 {
			return schedule.Schedule{}, false, fmt.Errorf("schedule file for cup %d: bad week %q on row %d", cupNumber, row[0], i+2)
		}
		fixtures = append(fixtures, schedule.Fixture{Week: week, Team1: row[1], Team2: row[2]})
		for _, name := range []string{row[1], row[2]} {
			if !seen[name] {
				seen[name] = true
				teams = append(teams, name)
			}
		}
	}
	return schedule.Schedule{Teams: teams, Fixtures: fixtures}, true, nil
}

// Save writes the cup's schedule file. An existing file is truncated;
// refusing overwrites is the service layer's call, not the store's.
func (r *ScheduleRepository) Save(ctx context.Context, cupNumber int, s schedule.Schedule) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(r.filePath(cupNumber))
	if err != nil {
		return fmt.Errorf("create schedule file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"Week", "Team1", "Team2"}); err != nil {
		return fmt.Errorf("write schedule header: %w", err)
	}
	for _, fix := range s.Fixtures {
		row := []string{strconv.Itoa(fix.Week), fix.Team1, fix.Team2}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write schedule row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush schedule file: %w", err)
	}
	return f.Close()
}

func (r *ScheduleRepository) ListCups(ctx context.Context) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches, err := filepath.Glob(filepath.Join(r.dir, scheduleFilePrefix+"*.csv"))
	if err != nil {
		return nil, fmt.Errorf("list schedule files: %w", err)
	}

	cups := make([]int, 0, len(matches))
	for _, m := range matches {
		base := filepath.Base(m)
		raw := base[len(scheduleFilePrefix) : len(base)-len(".csv")]
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			continue
		}
		cups = append(cups, n)
	}
	sort.Ints(cups)
	return cups, nil
}

type cupSchedule struct {
	Cup      int
	Schedule schedule.Schedule
}

// LoadAll reads every stored cup concurrently. Used at startup to fail
// fast on unreadable schedule files.
func (r *ScheduleRepository) LoadAll(ctx context.Context) (map[int]schedule.Schedule, error) {
	cups, err := r.ListCups(ctx)
	if err != nil {
		return nil, err
	}

	p := pool.NewWithResults[cupSchedule]().WithErrors().WithContext(ctx).WithMaxGoroutines(4)
	for _, cupNumber := range cups {
		cupNumber := cupNumber
		p.Go(func(ctx context.Context) (cupSchedule, error) {
			s, found, err := r.GetByCup(ctx, cupNumber)
			if err != nil {
				return cupSchedule{}, err
			}
			if !found {
				return cupSchedule{}, fmt.Errorf("schedule file for cup %d disappeared during load", cupNumber)
			}
			return cupSchedule{Cup: cupNumber, Schedule: s}, nil
		})
	}

	loaded, err := p.Wait()
	if err != nil {
		return nil, err
	}

	out := make(map[int]schedule.Schedule, len(loaded))
	for _, item := range loaded {
		out[item.Cup] = item.Schedule
	}
	return out, nil
}
