// Package query shapes a store snapshot for list responses: substring
// filtering followed by page/limit windowing. Everything here is pure; the
// snapshot is never mutated.
package query

import (
	"strconv"
	"strings"

	"user-directory-service/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ParsePage interprets a page query parameter. Absent, non-numeric, or
// non-positive input falls back to the default.
func ParsePage(raw string) int {
	return parsePositive(raw, DefaultPage)
}

// ParseLimit interprets a limit query parameter with the same defaulting rule.
func ParseLimit(raw string) int {
	return parsePositive(raw, DefaultLimit)
}

func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Filter keeps users whose name and email contain the respective filter
// substrings, case-insensitive. An empty filter matches everything; both
// filters must match when both are set.
func Filter(users []models.User, name, email string) []models.User {
	if name == "" && email == "" {
		return users
	}

	name = strings.ToLower(name)
	email = strings.ToLower(email)

	filtered := make([]models.User, 0, len(users))
	for _, user := range users {
		if name != "" && !strings.Contains(strings.ToLower(user.Name), name) {
			continue
		}
		if email != "" && !strings.Contains(strings.ToLower(user.Email), email) {
			continue
		}
		filtered = append(filtered, user)
	}
	return filtered
}

// Paginate slices the filtered sequence to the requested window, clamped to
// its bounds. A window past the end yields an empty page, never an error.
func Paginate(users []models.User, page, limit int) ([]models.User, models.Pagination) {
	total := len(users)

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	start := (page - 1) * limit
	end := start + limit

	// Huge page or limit values wrap the window arithmetic; a wrapped
	// window is past the end of the data, same as any other out-of-range
	// page.
	wrapped := start < 0 || end < start

	meta := models.Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalUsers:  total,
		HasNext:     !wrapped && end < total,
		HasPrev:     page > 1,
	}

	if wrapped || start >= total {
		return []models.User{}, meta
	}
	if end > total {
		end = total
	}
	return users[start:end], meta
}
