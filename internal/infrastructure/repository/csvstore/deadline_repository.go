package csvstore

import (
	"bufio"
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fplcups/minileague/internal/domain/season"
	"github.com/fplcups/minileague/internal/platform/logging"
)

const deadlineLayout = "2006-01-02, 15:04"

// DeadlineRepository resolves the current week from a deadlines file.
// Each line reads "<week>: <date>, <time>" and the last parseable line
// names the week in progress. The file is maintained by hand, so every
// failure mode degrades instead of erroring: an unreadable file means
// week 1 with the deadline passed, and an unparseable timestamp means
// the deadline is treated as passed.
type DeadlineRepository struct {
	path   string
	logger *logging.Logger
	now    func() time.Time
}

func NewDeadlineRepository(path string, logger *logging.Logger) *DeadlineRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &DeadlineRepository{path: path, logger: logger, now: time.Now}
}

func (r *DeadlineRepository) CurrentWeek(ctx context.Context) (season.CurrentWeek, error) {
	if err := ctx.Err(); err != nil {
		return season.CurrentWeek{}, err
	}

	fallback := season.CurrentWeek{Week: 1, DeadlinePassed: true}

	f, err := os.Open(r.path)
	if err != nil {
		r.logger.WarnContext(ctx, "deadlines file unreadable, assuming week 1", "path", r.path, "error", err)
		return fallback, nil
	}
	defer f.Close()

	var lastLine string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lastLine = line
		}
	}
	if err := scanner.Err(); err != nil {
		r.logger.WarnContext(ctx, "deadlines file unreadable, assuming week 1", "path", r.path, "error", err)
		return fallback, nil
	}
	if lastLine == "" {
		r.logger.WarnContext(ctx, "deadlines file empty, assuming week 1", "path", r.path)
		return fallback, nil
	}

	week, deadline, ok := parseDeadlineLine(lastLine)
	if !ok {
		r.logger.WarnContext(ctx, "deadlines file last line unparseable, assuming week 1", "path", r.path, "line", lastLine)
		return fallback, nil
	}

	current := season.CurrentWeek{Week: week, DeadlinePassed: true}
	if deadline.IsZero() {
		// Week parsed but its timestamp did not: count the week as
		// under way rather than hiding it.
		return current, nil
	}
	current.DeadlinePassed = !r.now().Before(deadline)
	return current, nil
}

func parseDeadlineLine(line string) (week int, deadline time.Time, ok bool) {
	head, tail, found := strings.Cut(line, ":")
	if !found {
		return 0, time.Time{}, false
	}
	week, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || week < 1 {
		return 0, time.Time{}, false
	}

	deadline, err = time.ParseInLocation(deadlineLayout, strings.TrimSpace(tail), time.Local)
	if err != nil {
		return week, time.Time{}, true
	}
	return week, deadline, true
}
