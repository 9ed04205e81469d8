package sofascore

import (
	"errors"
	"testing"

	"github.com/igorxl1/leaguepull/internal/usecase"
)

func TestParseTournamentURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		url          string
		tournamentID int64
		seasonID     int64
	}{
		{
			name:         "short form",
			url:          "https://x/tournament/384#id:70083",
			tournamentID: 384,
			seasonID:     70083,
		},
		{
			name:         "full page url",
			url:          "https://www.sofascore.com/tournament/football/south-america/conmebol-libertadores/384#id:70083",
			tournamentID: 384,
			seasonID:     70083,
		},
		{
			name:         "earlier numeric segment is not the tournament id",
			url:          "https://x/2024/17#id:61627",
			tournamentID: 17,
			seasonID:     61627,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ref, err := ParseTournamentURL(tc.url)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if ref.TournamentID != tc.tournamentID || ref.SeasonID != tc.seasonID {
				t.Fatalf("got (%d, %d), want (%d, %d)", ref.TournamentID, ref.SeasonID, tc.tournamentID, tc.seasonID)
			}
		})
	}
}

func TestParseTournamentURL_Malformed(t *testing.T) {
	t.Parallel()

	for _, url := range []string{
		"https://x/tournament/384",          // season id marker missing
		"https://x/tournament/abc#id:70083", // no integer segment
		"",
	} {
		if _, err := ParseTournamentURL(url); !errors.Is(err, usecase.ErrMalformedReference) {
			t.Fatalf("ParseTournamentURL(%q): expected ErrMalformedReference, got %v", url, err)
		}
	}
}
