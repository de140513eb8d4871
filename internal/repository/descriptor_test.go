package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	At    time.Time
	Label string
	X     float64
	PK    int64
	N     int64
}

var pointShape = Descriptor[point]{
	Name: "point",
	Fields: []Field{
		{Name: "label", Kind: KindText},
		{Name: "x", Kind: KindFloat},
		{Name: "n", Kind: KindInt},
		{Name: "at", Kind: KindTime},
	},
	Encode: func(p point) []any { return []any{p.Label, p.X, p.N, p.At} },
	Decode: func(pk int64, v []any) point {
		return point{PK: pk, Label: v[0].(string), X: v[1].(float64), N: v[2].(int64), At: v[3].(time.Time)}
	},
	PK:     func(p point) int64 { return p.PK },
	WithPK: func(p point, pk int64) point { p.PK = pk; return p },
}

func TestDescriptor_Validate(t *testing.T) {
	tests := []struct {
		mutate  func(d *Descriptor[point])
		wantErr error
		name    string
	}{
		{name: "valid", mutate: func(*Descriptor[point]) {}},
		{name: "empty name", mutate: func(d *Descriptor[point]) { d.Name = " " }, wantErr: ErrEmptyName},
		{name: "injection in name", mutate: func(d *Descriptor[point]) { d.Name = "point; DROP TABLE x" }, wantErr: ErrInvalidColumn},
		{name: "no fields", mutate: func(d *Descriptor[point]) { d.Fields = nil }, wantErr: ErrNoFields},
		{name: "missing decode", mutate: func(d *Descriptor[point]) { d.Decode = nil }, wantErr: ErrMissingFunc},
		{
			name: "field shadows key",
			mutate: func(d *Descriptor[point]) {
				d.Fields = append([]Field{{Name: PKColumn, Kind: KindInt}}, d.Fields...)
			},
			wantErr: ErrInvalidColumn,
		},
		{
			name: "duplicate field",
			mutate: func(d *Descriptor[point]) {
				d.Fields = []Field{{Name: "x", Kind: KindFloat}, {Name: "x", Kind: KindFloat}}
			},
			wantErr: ErrInvalidColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := pointShape
			d.Fields = append([]Field(nil), pointShape.Fields...)
			tt.mutate(&d)
			err := d.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDescriptor_RowRoundTrip(t *testing.T) {
	at := time.Date(2024, time.June, 10, 14, 5, 9, 0, time.Local)
	p := point{Label: "a", X: 1.5, N: 7, At: at}

	row, err := pointShape.EncodeRow(p)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", 1.5, int64(7), "2024-06-10 14:05:09"}, row)

	got, err := pointShape.DecodeRow(3, row)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.PK)
	assert.Equal(t, "a", got.Label)
	assert.True(t, at.Equal(got.At))
}

func TestDescriptor_TimeLosesSubSeconds(t *testing.T) {
	at := time.Date(2024, time.June, 10, 14, 5, 9, 999, time.Local)
	row, err := pointShape.EncodeRow(point{At: at})
	require.NoError(t, err)

	got, err := pointShape.DecodeRow(1, row)
	require.NoError(t, err)
	assert.True(t, at.Truncate(time.Second).Equal(got.At))
}

func TestDescriptor_TimeKeepsInstantAcrossZones(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	for _, at := range []time.Time{
		time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 10, 12, 0, 0, 0, tokyo),
	} {
		row, err := pointShape.EncodeRow(point{At: at})
		require.NoError(t, err)
		assert.Equal(t, at.In(time.Local).Format(TimeLayout), row[3])

		got, err := pointShape.DecodeRow(1, row)
		require.NoError(t, err)
		assert.True(t, at.Equal(got.At), "want %v, got %v", at, got.At)
		assert.Equal(t, time.Local, got.At.Location())

		pred, err := pointShape.CompileFilter(Filter{"at": at})
		require.NoError(t, err)
		assert.Equal(t, row[3], pred.Values[0])
	}
}

func TestDescriptor_CompileFilter(t *testing.T) {
	at := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.Local)

	pred, err := pointShape.CompileFilter(Filter{"n": 3, "label": "x", "at": at, PKColumn: int64(1)})
	require.NoError(t, err)
	assert.Equal(t, []string{"at", "label", "n", "pk"}, pred.Columns)
	assert.Equal(t, []any{"2024-06-10 00:00:00", "x", int64(3), int64(1)}, pred.Values)

	_, err = pointShape.CompileFilter(Filter{"missing": 1})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = pointShape.CompileFilter(Filter{"n": "three"})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	pred, err = pointShape.CompileFilter(nil)
	require.NoError(t, err)
	assert.Empty(t, pred.Columns)
}

func TestFromColumn(t *testing.T) {
	tests := []struct {
		in      any
		want    any
		name    string
		kind    FieldKind
		wantErr bool
	}{
		{name: "int", kind: KindInt, in: int64(4), want: int64(4)},
		{name: "null int", kind: KindInt, in: nil, want: int64(0)},
		{name: "integral real", kind: KindFloat, in: int64(4), want: float64(4)},
		{name: "text bytes", kind: KindText, in: []byte("hi"), want: "hi"},
		{name: "bad time", kind: KindTime, in: "yesterday", wantErr: true},
		{name: "text as int", kind: KindInt, in: "4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromColumn(tt.kind, tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
