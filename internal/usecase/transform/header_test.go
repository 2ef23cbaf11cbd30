package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simaogato/wealthflow-dashboard/internal/domain"
)

func TestLocateHeader(t *testing.T) {
	tests := []struct {
		name    string
		raw     *domain.RawTable
		want    int
		wantErr error
	}{
		{
			name: "header on the first row",
			raw:  rawTable([]string{"날짜", "총 자산"}, []string{"2024-01-01", "1"}),
			want: 0,
		},
		{
			name: "header after title and blank rows",
			raw: rawTable(
				[]string{"포트폴리오 현황"},
				[]string{"", ""},
				[]string{"구분", "  날짜  ", "총 자산"},
			),
			want: 2,
		},
		{
			name: "first matching row wins",
			raw:  rawTable([]string{"x"}, []string{"날짜"}, []string{"날짜"}),
			want: 1,
		},
		{
			name:    "marker must match the whole cell",
			raw:     rawTable([]string{"날짜(KST)", "총 자산"}, []string{"2024-01-01", "1"}),
			want:    -1,
			wantErr: domain.ErrHeaderNotFound,
		},
		{
			name:    "no marker anywhere",
			raw:     rawTable([]string{"a", "b"}, []string{"1", "2"}),
			want:    -1,
			wantErr: domain.ErrHeaderNotFound,
		},
		{
			name:    "nil table",
			raw:     nil,
			want:    -1,
			wantErr: domain.ErrNoData,
		},
		{
			name:    "no records",
			raw:     rawTable(),
			want:    -1,
			wantErr: domain.ErrNoData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LocateHeader(tt.raw, "날짜")
			assert.Equal(t, tt.want, got)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
