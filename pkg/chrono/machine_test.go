package chrono

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
)

func run(t *testing.T, m *Machine) []uint64 {
	t.Helper()
	out, err := m.RunToCompletion()
	if err != nil {
		t.Fatalf("RunToCompletion: %v", err)
	}
	return out
}

func TestMachineSingleInstructions(t *testing.T) {
	tests := []struct {
		name    string
		regs    Registers
		program Program
		wantOut []uint64
		want    Registers
	}{
		{
			name:    "bst C",
			regs:    Registers{C: 9},
			program: Program{2, 6},
			want:    Registers{B: 1, C: 9},
		},
		{
			name:    "out literals and A",
			regs:    Registers{A: 10},
			program: Program{5, 0, 5, 1, 5, 4},
			wantOut: []uint64{0, 1, 2},
			want:    Registers{A: 10},
		},
		{
			name:    "adv loop",
			regs:    Registers{A: 2024},
			program: Program{0, 1, 5, 4, 3, 0},
			wantOut: []uint64{4, 2, 5, 6, 7, 7, 7, 7, 3, 1, 0},
			want:    Registers{A: 0},
		},
		{
			name:    "bxl",
			regs:    Registers{B: 29},
			program: Program{1, 7},
			want:    Registers{B: 26},
		},
		{
			name:    "bxc",
			regs:    Registers{B: 2024, C: 43690},
			program: Program{4, 0},
			want:    Registers{B: 44354, C: 43690},
		},
		{
			name:    "bdv",
			regs:    Registers{A: 64},
			program: Program{6, 2},
			want:    Registers{A: 64, B: 16},
		},
		{
			name:    "cdv by B",
			regs:    Registers{A: 64, B: 3},
			program: Program{7, 5},
			want:    Registers{A: 64, B: 3, C: 8},
		},
		{
			name:    "adv by 64 or more clears A",
			regs:    Registers{A: 1 << 63, B: 70},
			program: Program{0, 5},
			want:    Registers{A: 0, B: 70},
		},
		{
			name:    "jnz falls through when A is zero",
			regs:    Registers{},
			program: Program{3, 0, 5, 1},
			wantOut: []uint64{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.regs, tt.program)
			out := run(t, m)
			if !slices.Equal(out, tt.wantOut) {
				t.Errorf("output = %v, want %v", out, tt.wantOut)
			}
			if m.Registers != tt.want {
				t.Errorf("registers = %+v, want %+v", m.Registers, tt.want)
			}
			if !m.Halted() {
				t.Error("machine not halted after RunToCompletion")
			}
		})
	}
}

func TestMachineExample(t *testing.T) {
	m, err := Parse("Register A: 729\nRegister B: 0\nRegister C: 0\n\nProgram: 0,1,5,4,3,0\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := Join(run(t, m)); got != "4,6,3,5,6,3,5,2,1,0" {
		t.Errorf("output = %q, want 4,6,3,5,6,3,5,2,1,0", got)
	}
}

func TestMachineDeterministic(t *testing.T) {
	program := Program{2, 4, 1, 2, 7, 5, 4, 5, 1, 3, 5, 5, 0, 3, 3, 0}
	regs := Registers{A: 46187030}

	first := run(t, New(regs, program))
	second := run(t, New(regs, program))
	if !slices.Equal(first, second) {
		t.Errorf("runs differ: %v vs %v", first, second)
	}
	if len(first) == 0 {
		t.Error("expected output")
	}
}

func TestMachineStepIsResumable(t *testing.T) {
	m := New(Registers{A: 10}, Program{5, 0, 5, 1, 5, 4})

	for i, want := range []uint64{0, 1, 2} {
		v, ok, err := m.Step()
		if err != nil || !ok {
			t.Fatalf("Step %d = (%d, %v, %v), want output", i, v, ok, err)
		}
		if v != want {
			t.Errorf("Step %d = %d, want %d", i, v, want)
		}
		if m.Counter() != 2*(i+1) {
			t.Errorf("counter after Step %d = %d, want %d", i, m.Counter(), 2*(i+1))
		}
	}

	for i := 0; i < 2; i++ {
		if _, ok, err := m.Step(); ok || err != nil {
			t.Errorf("Step after end = (%v, %v), want halted", ok, err)
		}
	}
	if !m.Halted() {
		t.Error("Halted() = false")
	}
}

func TestMachineOutputsLazy(t *testing.T) {
	m := New(Registers{A: 2024}, Program{0, 1, 5, 4, 3, 0})

	var got []uint64
	for v, err := range m.Outputs() {
		if err != nil {
			t.Fatalf("Outputs: %v", err)
		}
		got = append(got, v)
		if len(got) == 3 {
			break
		}
	}
	if !slices.Equal(got, []uint64{4, 2, 5}) {
		t.Errorf("first outputs = %v, want [4 2 5]", got)
	}
	if m.Halted() {
		t.Error("machine halted after partial consumption")
	}

	rest := run(t, m)
	if !slices.Equal(rest, []uint64{6, 7, 7, 7, 7, 3, 1, 0}) {
		t.Errorf("remaining outputs = %v", rest)
	}
}

func TestMachineOddLengthProgramHalts(t *testing.T) {
	tests := []struct {
		name    string
		program Program
		want    []uint64
	}{
		{"single value", Program{5}, nil},
		{"dangling opcode", Program{5, 1, 5}, []uint64{1}},
		{"empty", Program{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := run(t, New(Registers{}, tt.program))
			if !slices.Equal(out, tt.want) {
				t.Errorf("output = %v, want %v", out, tt.want)
			}
		})
	}
}

func TestMachineJumpPastEndHalts(t *testing.T) {
	m := New(Registers{A: 1}, Program{3, 7, 5, 4})
	if out := run(t, m); len(out) != 0 {
		t.Errorf("output = %v, want none", out)
	}
	if m.Counter() != 4 {
		t.Errorf("counter = %d, want 4", m.Counter())
	}
}

func TestMachineFaults(t *testing.T) {
	tests := []struct {
		name    string
		program Program
		want    error
		counter int
	}{
		{"unknown opcode", Program{5, 0, 8, 0}, ErrUnknownOpcode, 2},
		{"combo 7 on out", Program{5, 7}, ErrInvalidCombo, 0},
		{"combo 7 on adv", Program{1, 1, 0, 7}, ErrInvalidCombo, 2},
		{"combo above 7", Program{2, 9}, ErrInvalidCombo, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(Registers{A: 5}, tt.program)
			_, err := m.RunToCompletion()
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			var execErr *ExecError
			if !errors.As(err, &execErr) {
				t.Fatalf("error %T is not *ExecError", err)
			}
			if execErr.Counter != tt.counter {
				t.Errorf("fault counter = %d, want %d", execErr.Counter, tt.counter)
			}
			if !m.Halted() || m.Err() == nil {
				t.Error("faulted machine should stay halted with its error")
			}
			if _, ok, again := m.Step(); ok || !errors.Is(again, tt.want) {
				t.Errorf("Step after fault = (%v, %v)", ok, again)
			}
		})
	}
}

func TestMachineIgnoredOperandMayBeSeven(t *testing.T) {
	m := New(Registers{B: 1, C: 2}, Program{4, 7, 1, 7})
	run(t, m)
	if m.B != 4 {
		t.Errorf("B = %d, want 4", m.B)
	}
}

func TestMachineCloneIsIndependent(t *testing.T) {
	m := New(Registers{A: 10}, Program{5, 0, 5, 1, 5, 4})
	if _, _, err := m.Step(); err != nil {
		t.Fatal(err)
	}

	c := m.Clone()
	c.A = 99
	run(t, c)

	if m.A != 10 || m.Halted() || m.Counter() != 2 {
		t.Errorf("original changed: A=%d halted=%v counter=%d", m.A, m.Halted(), m.Counter())
	}
	if out := run(t, m); !slices.Equal(out, []uint64{1, 2}) {
		t.Errorf("original resumed with %v, want [1 2]", out)
	}
}

func TestMachineWithA(t *testing.T) {
	m := New(Registers{A: 1, B: 2, C: 3}, Program{5, 4})
	run(t, m)

	f := m.WithA(7)
	if f.Registers != (Registers{A: 7, B: 2, C: 3}) {
		t.Errorf("WithA registers = %+v", f.Registers)
	}
	if f.Counter() != 0 || f.Halted() {
		t.Error("WithA should start a fresh machine")
	}
	if out := run(t, f); !slices.Equal(out, []uint64{7}) {
		t.Errorf("output = %v, want [7]", out)
	}
}

func TestMachineTrace(t *testing.T) {
	var buf bytes.Buffer
	m := New(Registers{A: 8}, Program{0, 3, 5, 4, 3, 0})
	m.Trace = &buf
	run(t, m)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("trace has %d lines, want 6:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "[0000] adv  3  A=8 B=0 C=0") {
		t.Errorf("first trace line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "out  A") {
		t.Errorf("second trace line = %q", lines[1])
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	m := New(Registers{A: 1, B: 2, C: 3}, Program{5, 4, 5, 5, 5, 6})
	snap := m.Snapshot()

	if out := run(t, snap.Machine()); !slices.Equal(out, []uint64{1, 2, 3}) {
		t.Errorf("snapshot machine output = %v", out)
	}

	k1, err := snap.Key()
	if err != nil {
		t.Fatal(err)
	}
	k2, err := New(Registers{A: 1, B: 2, C: 3}, Program{5, 4, 5, 5, 5, 6}).Snapshot().Key()
	if err != nil {
		t.Fatal(err)
	}
	if k1 != k2 {
		t.Error("equal snapshots produced different keys")
	}

	k3, err := m.WithA(2).Snapshot().Key()
	if err != nil {
		t.Fatal(err)
	}
	if k1 == k3 {
		t.Error("different snapshots produced the same key")
	}
}
