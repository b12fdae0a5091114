package namegen

import (
	"strconv"
	"strings"

	"github.com/roguepikachu/namesmith/internal/domain"
)

// MaxNames is the most suggestions kept from one reply.
const MaxNames = 5

const separator = ": "

// ParseNames turns a raw "Name: Description" reply into records. Lines without
// the separator, or with an empty name or description, are skipped. The
// description keeps any further separators. IDs are 1-based over kept records.
func ParseNames(content string) []domain.GeneratedName {
	names := make([]domain.GeneratedName, 0, MaxNames)
	for _, line := range strings.Split(content, "\n") {
		if len(names) == MaxNames {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, separator) {
			continue
		}
		parts := strings.Split(line, separator)
		name := strings.TrimSpace(parts[0])
		desc := strings.TrimSpace(strings.Join(parts[1:], separator))
		if name == "" || desc == "" {
			continue
		}
		names = append(names, domain.GeneratedName{
			ID:          strconv.Itoa(len(names) + 1),
			Name:        name,
			Description: desc,
		})
	}
	return names
}
