package scoring

import (
	"reflect"
	"testing"
)

func TestRankAverage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		values []float64
		want   []float64
	}{
		{"empty", nil, nil},
		{"distinct", []float64{30, 10, 20}, []float64{3, 1, 2}},
		{"two way tie", []float64{10, 20, 20, 30}, []float64{1, 2.5, 2.5, 4}},
		{"three way tie", []float64{5, 5, 5}, []float64{2, 2, 2}},
		{"tie at bottom", []float64{7, 7, 9}, []float64{1.5, 1.5, 3}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := RankAverage(tc.values); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("RankAverage(%v) = %v, want %v", tc.values, got, tc.want)
			}
		})
	}
}

func TestRankMinDescending(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		values []float64
		want   []int
	}{
		{"empty", nil, nil},
		{"distinct", []float64{10, 30, 20}, []int{3, 1, 2}},
		{"tied leaders skip next rank", []float64{80, 80, 60}, []int{1, 1, 3}},
		{"all tied", []float64{50, 50, 50}, []int{1, 1, 1}},
		{"middle tie", []float64{90, 70, 70, 40}, []int{1, 2, 2, 4}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := RankMinDescending(tc.values); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("RankMinDescending(%v) = %v, want %v", tc.values, got, tc.want)
			}
		})
	}
}
