package voxel

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		name        string
		coord, step float64
		want        int
	}{
		{"origin", 0, 0.125, 0},
		{"inside first cell", 0.1, 0.125, 0},
		{"exact boundary", 0.25, 0.125, 2},
		{"noise below boundary", 0.375 - 1e-12, 0.125, 3},
		{"clearly below boundary", 0.375 - 1e-3, 0.125, 2},
		{"negative", -0.1, 0.125, -1},
		{"negative boundary", -0.25, 0.125, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantize(tt.coord, tt.step); got != tt.want {
				t.Errorf("Quantize(%v, %v) = %d, want %d", tt.coord, tt.step, got, tt.want)
			}
		})
	}
}

func TestCellOfAndPosition(t *testing.T) {
	c := CellOf(mgl64.Vec3{0.3, -0.3, 1.0}, 0.25)
	if c != (Cell{1, -2, 4}) {
		t.Fatalf("CellOf() = %v, want (1,-2,4)", c)
	}
	if got := c.Position(0.25); !got.ApproxEqual(mgl64.Vec3{0.25, -0.5, 1}) {
		t.Errorf("Position() = %v", got)
	}
}

func TestCellClamp(t *testing.T) {
	got := Cell{-3, 5, 9}.Clamp(Cell{0, 0, 0}, Cell{7, 7, 7})
	if got != (Cell{0, 5, 7}) {
		t.Errorf("Clamp() = %v, want (0,5,7)", got)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseUp.String() != "up" || PhaseInterior.String() != "interior" {
		t.Errorf("names = %s, %s", PhaseUp, PhaseInterior)
	}
	if Phase(42).String() != "phase(42)" {
		t.Errorf("unknown phase = %s", Phase(42))
	}
}

func TestIndexFirstWriterWins(t *testing.T) {
	x := NewIndex()
	cell := Cell{1, 2, 3}
	if !x.InsertIfAbsent(Voxel{Cell: cell, BlockID: "red"}) {
		t.Fatal("first insert rejected")
	}
	if x.InsertIfAbsent(Voxel{Cell: cell, BlockID: "blue"}) {
		t.Fatal("second insert into the same cell accepted")
	}
	if !x.InsertIfAbsent(Voxel{Cell: Cell{0, 0, 0}, BlockID: "green"}) {
		t.Fatal("insert into a free cell rejected")
	}

	if x.Len() != 2 {
		t.Errorf("Len() = %d, want 2", x.Len())
	}
	v, ok := x.Get(cell)
	if !ok || v.BlockID != "red" {
		t.Errorf("Get() = %+v, %v, want red", v, ok)
	}
	if !x.Has(Cell{0, 0, 0}) || x.Has(Cell{9, 9, 9}) {
		t.Error("Has() disagrees with inserts")
	}

	all := x.Voxels()
	if len(all) != 2 || all[0].BlockID != "red" || all[1].BlockID != "green" {
		t.Errorf("Voxels() = %+v", all)
	}
	all[0].BlockID = "mutated"
	if v, _ := x.Get(cell); v.BlockID != "red" {
		t.Error("Voxels() exposed internal storage")
	}

	if got := x.Since(1); len(got) != 1 || got[0].BlockID != "green" {
		t.Errorf("Since(1) = %+v", got)
	}
	if got := x.Since(2); got != nil {
		t.Errorf("Since(2) = %+v, want nil", got)
	}
}

func TestHistogram(t *testing.T) {
	voxels := []Voxel{
		{BlockID: "stone", Phase: PhaseUp},
		{BlockID: "glass", Phase: PhaseUp},
		{BlockID: "stone", Phase: PhaseInterior},
		{BlockID: "dirt", Phase: PhaseInterior},
	}
	got := Histogram(voxels)
	want := []BlockCount{{"stone", 2}, {"dirt", 1}, {"glass", 1}}
	if len(got) != len(want) {
		t.Fatalf("Histogram() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	phases := PhaseCounts(voxels)
	if phases[PhaseUp] != 2 || phases[PhaseInterior] != 2 {
		t.Errorf("PhaseCounts() = %v", phases)
	}
}
