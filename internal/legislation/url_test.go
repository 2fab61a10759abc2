package legislation

import "testing"

func TestCongressURL(t *testing.T) {
	tests := []struct {
		billType string
		number   string
		want     string
	}{
		{"HR", "3421", "https://www.congress.gov/bill/118th-congress/house-bill/3421"},
		{"S", "892", "https://www.congress.gov/bill/118th-congress/senate-bill/892"},
		{"HJRES", "7", "https://www.congress.gov/bill/118th-congress/house-joint-resolution/7"},
		{"SJRES", "7", "https://www.congress.gov/bill/118th-congress/senate-joint-resolution/7"},
		{"HCONRES", "7", "https://www.congress.gov/bill/118th-congress/house-concurrent-resolution/7"},
		{"SCONRES", "7", "https://www.congress.gov/bill/118th-congress/senate-concurrent-resolution/7"},
		{"HRES", "7", "https://www.congress.gov/bill/118th-congress/house-resolution/7"},
		{"SRES", "7", "https://www.congress.gov/bill/118th-congress/senate-resolution/7"},
		{"hr", "12", "https://www.congress.gov/bill/118th-congress/house-bill/12"},
		{"XYZ", "5", "https://www.congress.gov/bill/118th-congress/bill/5"},
		{"", "5", "https://www.congress.gov"},
		{"HR", "", "https://www.congress.gov"},
		{"", "", "https://www.congress.gov"},
	}

	for _, tt := range tests {
		if got := CongressURL(118, tt.billType, tt.number); got != tt.want {
			t.Errorf("CongressURL(118, %q, %q) = %q, want %q", tt.billType, tt.number, got, tt.want)
		}
	}
}

func TestCongressURL_UsesSession(t *testing.T) {
	got := CongressURL(119, "HR", "1")
	want := "https://www.congress.gov/bill/119th-congress/house-bill/1"
	if got != want {
		t.Errorf("CongressURL = %q, want %q", got, want)
	}
}
