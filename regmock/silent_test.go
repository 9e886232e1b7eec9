package regmock

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Silent", func() {
	var state *State

	BeforeEach(func() {
		state = NewState()
		state.SetReadBehavior(regIn, ReadFunc(func(RegisterMap, uint64) uint64 { return 0xAA }))
	})

	It("should neither log nor run behaviors", func() {
		var value uint64

		state.Silent(func() {
			value = state.Read(regIn, 4)
			state.Write(regOut, 4, 3)
		})

		Expect(value).To(Equal(uint64(0)))
		Expect(state.Log().Len()).To(Equal(0))
		Expect(state.Read(regOut, 4)).To(Equal(uint64(3)))
		Expect(state.Capture()).To(BeTrue())
		Expect(state.Callbacks()).To(BeTrue())
	})

	It("should restore the flags when the body panics", func() {
		Expect(func() {
			state.Silent(func() { panic("boom") })
		}).To(PanicWith("boom"))

		Expect(state.Capture()).To(BeTrue())
		Expect(state.Callbacks()).To(BeTrue())
	})

	It("should restore the enclosing state when nested", func() {
		state.Silent(func() {
			state.Read(regIn, 4)

			state.SetCapture(true)
			Expect(state.Read(regIn, 4)).To(Equal(uint64(0)))

			state.Silent(func() {
				state.Write(regOut, 4, 1)
			})

			Expect(state.Capture()).To(BeTrue())
			Expect(state.Callbacks()).To(BeFalse())
			state.Write(regOut, 4, 2)
		})

		entries := state.Log().Entries()
		Expect(entries).To(HaveLen(2))
		Expect(entries[0].Record.IsRead()).To(BeTrue())
		Expect(*entries[1].Record.After).To(Equal(uint64(2)))
		Expect(state.Capture()).To(BeTrue())
		Expect(state.Callbacks()).To(BeTrue())
	})

	It("should keep disabled flags disabled", func() {
		state.SetCapture(false)

		state.Silent(func() {})

		Expect(state.Capture()).To(BeFalse())
		Expect(state.Callbacks()).To(BeTrue())
	})

	It("should return values from the body", func() {
		state.SetRegister(regOut, 9)

		value := SilentValue(state, func() uint64 { return state.Read(regOut, 4) })

		Expect(value).To(Equal(uint64(9)))
		Expect(state.Log().Len()).To(Equal(0))
	})
})
