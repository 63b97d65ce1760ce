// Package program holds the synthetic workloads that drive the reference
// stream through the address translator.
package program

import (
	"fmt"
	"math/rand"
	"sort"

	util "github.com/bietkhonhungvandi212/virtmem/internal/utils"
)

// seed makes every run of a workload touch memory in the same order
const seed = 38290

// Memory is the virtual memory a workload runs on
type Memory interface {
	Load(addr int) (byte, error)
	Store(addr int, v byte) error
	VirtSize() int
}

// Program runs against mem and returns its checksum
type Program func(mem Memory) (int, error)

var programs = map[string]Program{
	"scan":  Scan,
	"sort":  Sort,
	"focus": Focus,
}

// Lookup returns the workload registered under name
func Lookup(name string) (Program, error) {
	p, ok := programs[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, util.ErrUnknownProgram)
	}
	return p, nil
}

// Names lists the registered workloads in sorted order
func Names() []string {
	names := make([]string, 0, len(programs))
	for name := range programs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sum(mem Memory) (int, error) {
	total := 0
	for i := 0; i < mem.VirtSize(); i++ {
		v, err := mem.Load(i)
		if err != nil {
			return 0, err
		}
		total += int(v)
	}
	return total, nil
}

// Scan writes a byte pattern across memory and then reads it all ten times.
func Scan(mem Memory) (int, error) {
	for i := 0; i < mem.VirtSize(); i++ {
		if err := mem.Store(i, byte(i%256)); err != nil {
			return 0, err
		}
	}

	total := 0
	for range 10 {
		s, err := sum(mem)
		if err != nil {
			return 0, err
		}
		total += s
	}
	return total, nil
}

// Focus stores random values into small windows at random offsets, so most
// references hit a handful of pages.
func Focus(mem Memory) (int, error) {
	rng := rand.New(rand.NewSource(seed))
	length := mem.VirtSize()

	for i := 0; i < length; i++ {
		if err := mem.Store(i, 0); err != nil {
			return 0, err
		}
	}

	const (
		bursts     = 100
		burstLen   = 100
		windowSize = 25
	)
	for range bursts {
		start := rng.Intn(length)
		for range burstLen {
			addr := (start + rng.Intn(windowSize)) % length
			if err := mem.Store(addr, byte(rng.Intn(256))); err != nil {
				return 0, err
			}
		}
	}

	return sum(mem)
}

// Sort fills memory with random bytes and sorts it in place.
func Sort(mem Memory) (int, error) {
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < mem.VirtSize(); i++ {
		if err := mem.Store(i, byte(rng.Intn(256))); err != nil {
			return 0, err
		}
	}

	data := &virtualBytes{mem: mem}
	sort.Sort(data)
	if data.err != nil {
		return 0, data.err
	}

	return sum(mem)
}

// virtualBytes adapts Memory to sort.Interface. The first access error is
// kept and every later call becomes a no-op.
type virtualBytes struct {
	mem Memory
	err error
}

func (v *virtualBytes) Len() int { return v.mem.VirtSize() }

func (v *virtualBytes) load(i int) byte {
	if v.err != nil {
		return 0
	}
	b, err := v.mem.Load(i)
	if err != nil {
		v.err = err
	}
	return b
}

func (v *virtualBytes) store(i int, b byte) {
	if v.err != nil {
		return
	}
	v.err = v.mem.Store(i, b)
}

func (v *virtualBytes) Less(i, j int) bool {
	return v.load(i) < v.load(j)
}

func (v *virtualBytes) Swap(i, j int) {
	a, b := v.load(i), v.load(j)
	v.store(i, b)
	v.store(j, a)
}
