package life_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/geolife/internal/geohash"
	"github.com/san-kum/geolife/internal/life"
)

func offset(origin string, dLat, dLng int) string {
	h, err := geohash.Offset(origin, dLat, dLng)
	Expect(err).NotTo(HaveOccurred())
	return h
}

var _ = Describe("Step", func() {
	// u2edh sits in Vienna at precision 5, far from any grid edge
	const center = "u2edh"

	It("kills an isolated cell", func() {
		Expect(life.Step(life.NewLiveSet(center))).To(BeEmpty())
	})

	It("keeps an empty set empty", func() {
		Expect(life.Step(life.NewLiveSet())).To(BeEmpty())
	})

	It("leaves a 2x2 block unchanged", func() {
		block := life.NewLiveSet("u2", "u3", "u8", "u9")
		Expect(life.Step(block).Sorted()).To(Equal(block.Sorted()))
	})

	It("leaves a block across the antimeridian unchanged", func() {
		block := life.NewLiveSet("xbp", "xbr", "800", "802")
		Expect(life.Step(block).Equal(block)).To(BeTrue())
	})

	It("gives birth to a cell with exactly three live neighbours", func() {
		next := life.Step(life.NewLiveSet("u2", "u3", "u8"))
		Expect(next.Contains("u9")).To(BeTrue())
		Expect(next.Sorted()).To(Equal([]string{"u2", "u3", "u8", "u9"}))
	})

	It("oscillates a blinker with period two", func() {
		horizontal := life.NewLiveSet(offset(center, 0, -1), center, offset(center, 0, 1))
		vertical := life.NewLiveSet(offset(center, 1, 0), center, offset(center, -1, 0))

		Expect(life.Step(horizontal).Sorted()).To(Equal(vertical.Sorted()))
		Expect(life.Step(vertical).Sorted()).To(Equal(horizontal.Sorted()))
	})

	It("moves a glider one cell south east every four generations", func() {
		shape := [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
		glider := life.NewLiveSet()
		moved := life.NewLiveSet()
		for _, rc := range shape {
			glider.Add(offset(center, -rc[0], rc[1]))
			moved.Add(offset(center, -rc[0]-1, rc[1]+1))
		}

		s := glider
		for i := 0; i < 4; i++ {
			s = life.Step(s)
		}
		Expect(s.Sorted()).To(Equal(moved.Sorted()))
	})

	It("counts every neighbour slot in the polar rows", func() {
		// top row: N is the cell itself, NE and E are the same cell
		Expect(life.Step(life.NewLiveSet("zz"))).To(BeEmpty())

		// self plus the partner twice makes 3
		pair := life.NewLiveSet("bp", "br")
		Expect(life.Step(pair).Sorted()).To(Equal([]string{"bp", "br"}))

		bottom := life.NewLiveSet("00", "02")
		Expect(life.Step(bottom).Sorted()).To(Equal([]string{"00", "02"}))

		// br sees itself, bx twice and bp twice
		next := life.Step(life.NewLiveSet("bp", "br", "bx"))
		Expect(next.Sorted()).To(Equal([]string{"bp", "bq", "bx"}))
	})

	It("does not mutate its input", func() {
		in := life.NewLiveSet("u2", "u3", "u8")
		before := in.Clone()
		_ = life.Step(in)
		Expect(in.Equal(before)).To(BeTrue())
	})

	It("is deterministic", func() {
		in := life.NewLiveSet(center, offset(center, 0, 1), offset(center, 1, 1), offset(center, -1, 0), offset(center, 2, 2))
		first := life.Step(in).Sorted()
		for i := 0; i < 10; i++ {
			Expect(life.Step(in.Clone()).Sorted()).To(Equal(first))
		}
	})

	It("stays at a fixed point once reached", func() {
		s := life.NewLiveSet("u2", "u3", "u8")
		s = life.Step(s)
		for i := 0; i < 5; i++ {
			next := life.Step(s)
			Expect(next.Equal(s)).To(BeTrue())
			s = next
		}
	})

	It("drops malformed entries", func() {
		Expect(life.Step(life.NewLiveSet("u2", "u3", "u8", "not-a-hash")).Contains("not-a-hash")).To(BeFalse())
	})
})

var _ = DescribeTable("Conway",
	func(neighbors int, alive, want bool) {
		Expect(life.Conway(neighbors, alive)).To(Equal(want))
	},
	Entry("lonely live cell dies", 1, true, false),
	Entry("live cell with two survives", 2, true, true),
	Entry("live cell with three survives", 3, true, true),
	Entry("crowded live cell dies", 4, true, false),
	Entry("dead cell with three is born", 3, false, true),
	Entry("dead cell with two stays dead", 2, false, false),
	Entry("zero neighbours", 0, false, false),
	Entry("eight neighbours", 8, true, false),
)
