package client

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/MKhiriev/go-shelf-auth/internal/validators"
	"github.com/MKhiriev/go-shelf-auth/models"
	"github.com/charmbracelet/lipgloss"
)

var (
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Faint(true).Width(12)
	okStyle    = lipgloss.NewStyle().Bold(true)
	errorStyle = lipgloss.NewStyle().Bold(true)
)

type row struct {
	label string
	value string
}

func renderBox(title string, rows []row) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(r.label))
		b.WriteString(r.value)
	}
	return boxStyle.Render(b.String())
}

func renderUser(u models.PublicUser) string {
	flags := []string{string(u.UserType)}
	if u.IsAdmin {
		flags = append(flags, "admin")
	}
	if u.IsVerified {
		flags = append(flags, "verified")
	}

	return renderBox(u.Name, []row{
		{"id", u.ID},
		{"email", u.Email},
		{"age", fmt.Sprint(u.Age)},
		{"type", strings.Join(flags, ", ")},
		{"followers", fmt.Sprint(u.FollowersCount)},
		{"following", fmt.Sprint(u.FollowingCount)},
		{"version", fmt.Sprint(u.Version)},
		{"joined", u.CreatedAt.Format("2006-01-02")},
	})
}

func renderSession(title string, s models.Session) string {
	return renderBox(title, []row{
		{"user", s.Name},
		{"email", s.Email},
		{"id", s.UserID},
		{"server", s.Server},
	})
}

func renderVersion(client models.AppBuildInfo, server models.VersionResponse, serverErr error) string {
	rows := []row{
		{"client", fmt.Sprintf("%s (%s, %s)", client.BuildVersion(), client.BuildDate(), client.BuildCommit())},
	}
	if serverErr != nil {
		rows = append(rows, row{"server", "unreachable: " + serverErr.Error()})
	} else {
		rows = append(rows, row{"server", fmt.Sprintf("%s (%s, %s)", server.Version, server.BuildDate, server.BuildCommit)})
	}
	return renderBox("shelf-auth", rows)
}

func renderOK(msg string) string {
	return okStyle.Render(msg)
}

// renderError formats err for the terminal. Validation failures list their
// fields in a stable order.
func renderError(err error) string {
	var verr *validators.ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) == 0 {
		return errorStyle.Render("error: ") + err.Error()
	}

	rows := make([]row, 0, len(verr.Fields))
	for _, f := range slices.Sorted(maps.Keys(verr.Fields)) {
		rows = append(rows, row{f, verr.Fields[f]})
	}
	return renderBox("validation failed", rows)
}
