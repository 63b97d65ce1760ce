package program

import (
	"errors"
	"testing"

	util "github.com/bietkhonhungvandi212/virtmem/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatMemory is a plain byte slice with an optional failure point
type flatMemory struct {
	data     []byte
	failAt   int
	failErr  error
	accesses int
}

func newFlat(npages int) *flatMemory {
	return &flatMemory{data: make([]byte, npages*util.PageSize), failAt: -1}
}

func (m *flatMemory) check() error {
	m.accesses++
	if m.failAt >= 0 && m.accesses > m.failAt {
		return m.failErr
	}
	return nil
}

func (m *flatMemory) Load(addr int) (byte, error) {
	if err := m.check(); err != nil {
		return 0, err
	}
	return m.data[addr], nil
}

func (m *flatMemory) Store(addr int, v byte) error {
	if err := m.check(); err != nil {
		return err
	}
	m.data[addr] = v
	return nil
}

func (m *flatMemory) VirtSize() int { return len(m.data) }

func TestLookup(t *testing.T) {
	for _, name := range []string{"scan", "sort", "focus"} {
		p, err := Lookup(name)
		require.NoError(t, err, name)
		assert.NotNil(t, p)
	}

	_, err := Lookup("matmul")
	assert.ErrorIs(t, err, util.ErrUnknownProgram)

	assert.Equal(t, []string{"focus", "scan", "sort"}, Names())
}

func TestScan(t *testing.T) {
	mem := newFlat(2)
	total, err := Scan(mem)
	require.NoError(t, err)

	// each 256-byte run sums to 0+1+...+255
	runs := mem.VirtSize() / 256
	assert.Equal(t, 10*runs*255*256/2, total)
	assert.Equal(t, byte(7), mem.data[256+7])
}

func TestSort(t *testing.T) {
	mem := newFlat(1)
	total, err := Sort(mem)
	require.NoError(t, err)

	want := 0
	for i, b := range mem.data {
		want += int(b)
		if i > 0 {
			require.LessOrEqual(t, mem.data[i-1], b, "sorted at %d", i)
		}
	}
	assert.Equal(t, want, total)
	assert.NotZero(t, total)
}

func TestFocus(t *testing.T) {
	a, b := newFlat(2), newFlat(2)

	ta, err := Focus(a)
	require.NoError(t, err)
	tb, err := Focus(b)
	require.NoError(t, err)

	assert.Equal(t, ta, tb, "deterministic")
	assert.Equal(t, a.data, b.data)
	assert.NotZero(t, ta)
}

func TestProgramErrors(t *testing.T) {
	boom := errors.New("fault")

	for _, name := range Names() {
		for _, failAt := range []int{0, 10, 3 * util.PageSize} {
			mem := newFlat(1)
			mem.failAt = failAt
			mem.failErr = boom

			p, _ := Lookup(name)
			_, err := p(mem)
			assert.ErrorIs(t, err, boom, "%s failing after %d accesses", name, failAt)
		}
	}
}
