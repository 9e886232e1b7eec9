package regmock

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Registry", func() {
	var registry *Registry

	BeforeEach(func() {
		registry = NewRegistry()
	})

	It("should give each participant a private state by default", func() {
		test := registry.Install("test", nil)
		dut := registry.Install("dut", nil)

		dut.Write(regOut, 4, 1)

		Expect(test).NotTo(BeIdenticalTo(dut))
		Expect(test.Log().Len()).To(Equal(0))
		Expect(registry.Active("dut")).To(BeIdenticalTo(dut))
	})

	It("should share an explicitly passed state", func() {
		shared := NewState()
		registry.Install("test", shared)
		registry.Install("dut", shared)

		registry.Active("dut").Write(regOut, 4, 1)

		Expect(registry.Active("test").Read(regOut, 4)).To(Equal(uint64(1)))
		Expect(shared.Log().Len()).To(Equal(2))
	})

	It("should refuse to install twice", func() {
		registry.Install("test", nil)

		Expect(func() { registry.Install("test", NewState()) }).
			To(PanicWith(MatchError(ErrAlreadyInstalled)))
	})

	It("should refuse to operate before install", func() {
		Expect(registry.Installed("dut")).To(BeFalse())
		Expect(func() { registry.Active("dut") }).
			To(PanicWith(MatchError(ErrNotInstalled)))
	})

	It("should provide a process wide registry", func() {
		state := Install("regmock-suite-participant", nil)

		Expect(Active("regmock-suite-participant")).To(BeIdenticalTo(state))
	})
})
