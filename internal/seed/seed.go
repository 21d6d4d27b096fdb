package seed

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
	"github.com/skrm-sewa/duty-tracker/backend/internal/repository"
	"github.com/skrm-sewa/duty-tracker/backend/internal/utils"
)

// ImportRoster loads the sewadar roster from a CSV export with a
// name,gender,group header. Rows with an unknown group are skipped, not
// fatal: roster exports routinely carry a few malformed lines.
func ImportRoster(r *repository.Repository, path string) {
	file, err := os.Open(path)
	if err != nil {
		slog.Error("failed to open roster file", "path", path, "error", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)

	headers, err := reader.Read()
	if err != nil {
		slog.Error("failed to read roster header", "error", err)
		return
	}

	cols := make(map[string]int, len(headers))
	for i, header := range headers {
		cols[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, required := range []string{"name", "gender", "group"} {
		if _, ok := cols[required]; !ok {
			slog.Error("roster file is missing a column", "column", required)
			return
		}
	}

	imported := 0
	for {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			slog.Error("failed to read roster row", "error", err)
			return
		}

		group := domain.Group(strings.TrimSpace(row[cols["group"]]))
		if !domain.IsRosterGroup(group) {
			slog.Warn("skipping roster row with unknown group", "group", string(group))
			continue
		}

		sewadar := &domain.Sewadar{
			Name:      strings.TrimSpace(row[cols["name"]]),
			Gender:    domain.Gender(strings.TrimSpace(row[cols["gender"]])),
			HomeGroup: group,
		}
		if sewadar.Name == "" {
			slog.Warn("skipping roster row without a name")
			continue
		}

		if err := r.CreateSewadar(sewadar); err != nil {
			slog.Error("failed to insert sewadar", "name", sewadar.Name, "error", err)
			continue
		}
		imported++
	}

	slog.Info("roster imported", "count", imported)
}

// SeedIncharges creates one incharge per sewa group with the shared seed
// password, for development databases only.
func SeedIncharges(r *repository.Repository, password string) {
	groups := append([]domain.Group{}, domain.GentsGroups...)
	groups = append(groups, domain.GroupLadies)

	created := 0
	for _, group := range groups {
		incharge, err := utils.GenerateRandomIncharge(password, group)
		if err != nil {
			slog.Error("failed to generate incharge", "group", string(group), "error", err)
			continue
		}

		if err := r.CreateIncharge(incharge); err != nil {
			slog.Error("failed to insert incharge", "group", string(group), "error", err)
			continue
		}
		created++
	}

	slog.Info("incharges seeded", "count", created)
}
