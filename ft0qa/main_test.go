package main

import "testing"

func TestNumberOfEventsToProcess(t *testing.T) {
	cases := []struct {
		name      string
		fileCount int
		skip      int
		max       int
		want      int
	}{
		{"whole file", 100, 0, 1000, 100},
		{"capped by max events", 100, 0, 40, 40},
		{"skip shortens the run", 100, 10, 1000, 90},
		{"skip and cap together", 100, 10, 40, 30},
		{"skip beyond the file", 20, 30, 1000, 0},
		{"empty file", 0, 0, 1000, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := numberOfEventsToProcess(tc.fileCount, tc.skip, tc.max)
			if got != tc.want {
				t.Errorf("numberOfEventsToProcess(%d, %d, %d) = %d, want %d",
					tc.fileCount, tc.skip, tc.max, got, tc.want)
			}
		})
	}
}
