package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/taskreg/api/internal/model"
)

var csvHeader = []string{
	"ID", "Title", "Description", "Status", "Owner", "Team",
	"Deadline", "Tags", "CreatedAt", "ModifiedAt",
}

// ExportTasksCSV writes every registered task to w as CSV, one row per task
// in registration order. Tag IDs are joined with ";" in a single column.
func (g *Registry) ExportTasksCSV(w io.Writer) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return ErrNotInitialized
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, task := range g.tasks.ListAll() {
		tags := make([]string, len(task.TagIDs))
		for i, id := range task.TagIDs {
			tags[i] = id.String()
		}
		row := []string{
			task.ID.String(),
			task.Title,
			task.Description,
			string(task.Status),
			task.OwnerID.String(),
			task.TeamID.String(),
			model.FormatTime(task.Deadline),
			strings.Join(tags, ";"),
			model.FormatTime(task.CreatedAt),
			model.FormatTime(task.ModifiedAt),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for task %s: %w", task.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Counts reports the size of each collection, for health and logging.
func (g *Registry) Counts() map[string]int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return map[string]int{
		"users": g.users.Count(),
		"tags":  g.tags.Count(),
		"teams": g.teams.Count(),
		"tasks": g.tasks.Count(),
	}
}
