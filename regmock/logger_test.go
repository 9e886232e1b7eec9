package regmock

import (
	"bytes"
	"io"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/regmock/access"
	"github.com/sarchlab/regmock/hooking"
)

var _ = Describe("Hooks", func() {
	var (
		mockCtrl *gomock.Controller
		hook     *MockHook
		state    *State
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		hook = NewMockHook(mockCtrl)
		state = Builder{}.WithHook(hook).Build("hooked")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should invoke hooks for recorded reads", func() {
		hook.EXPECT().Func(gomock.Any()).Do(func(ctx hooking.HookCtx) {
			Expect(ctx.Domain).To(BeIdenticalTo(state))
			Expect(ctx.Pos).To(BeIdenticalTo(HookPosRead))
			Expect(ctx.Record.Equal(
				access.New(access.KindRead, regIn, 4, 0, 0))).To(BeTrue())
		})

		state.Read(regIn, 4)
	})

	It("should pass the requested value of writes", func() {
		state.SetWriteBehavior(regOut, WriteFunc(func(_ RegisterMap, _, v uint64) uint64 {
			return v & 0xF
		}))

		hook.EXPECT().Func(gomock.Any()).Do(func(ctx hooking.HookCtx) {
			Expect(ctx.Pos).To(BeIdenticalTo(HookPosWrite))
			Expect(ctx.Requested).To(Equal(uint64(0x1F)))
			Expect(*ctx.Record.After).To(Equal(uint64(0xF)))
		})

		state.Write(regOut, 4, 0x1F)
	})

	It("should report load-modify-store separately", func() {
		hook.EXPECT().Func(gomock.Any()).Do(func(ctx hooking.HookCtx) {
			Expect(ctx.Pos).To(BeIdenticalTo(HookPosLoadModifyStore))
		})

		state.LoadModifyStore(regOut, 4, 1)
	})

	It("should stay quiet while silent", func() {
		state.Silent(func() {
			state.Read(regIn, 4)
			state.Write(regOut, 4, 1)
		})
	})

	It("should list registered hooks", func() {
		Expect(state.NumHooks()).To(Equal(1))
		Expect(state.Hooks()).To(ConsistOf(hook))
	})
})

var _ = Describe("AccessLogger", func() {
	It("should print every recorded access", func() {
		buf := &bytes.Buffer{}
		state := Builder{}.
			WithResolver(access.MapResolver(map[access.Addr]string{regOut: "GPIO.OUT"})).
			Build("gpio")
		state.AcceptHook(NewAccessLogger(log.New(buf, "", 0)))

		state.Write(regOut, 4, 0x11)
		state.Read(regIn, 4)

		Expect(buf.String()).To(Equal(
			"gpio: Write {kind: Write, addr: 0x40000008 (GPIO.OUT), len: 4, " +
				"before: 0x00000000, after: 0x00000011}\n" +
				"gpio: Read {kind: Read, addr: 0x40000004, len: 4, " +
				"before: 0x00000000, after: 0x00000000}\n"))
	})

	It("should refuse a second registration without poisoning the state", func() {
		state := NewState()
		logger := NewAccessLogger(log.New(io.Discard, "", 0))
		state.AcceptHook(logger)

		Expect(func() { state.AcceptHook(logger) }).To(PanicWith("duplicated hook"))
		Expect(state.NumHooks()).To(Equal(1))
		Expect(func() { state.Write(regOut, 4, 1) }).NotTo(Panic())
		Expect(state.Log().Len()).To(Equal(1))
	})
})

var _ = Describe("DumpTo", func() {
	It("should serialize a snapshot of the state", func() {
		state := Builder{}.
			WithResolver(access.MapResolver(map[access.Addr]string{regOut: "GPIO.OUT"})).
			Build("gpio")
		state.Write(regOut, 4, 0x11)
		state.Read(regIn, 4)
		state.Read(regIn, 4)

		buf := &bytes.Buffer{}
		Expect(state.DumpTo(buf)).To(Succeed())

		dump := buf.String()
		Expect(dump).To(ContainSubstring(state.ID()))
		Expect(dump).To(ContainSubstring("0x40000008 (GPIO.OUT)"))
		Expect(dump).To(ContainSubstring("0x00000011"))
		Expect(dump).To(ContainSubstring("Count"))
		Expect(dump).To(ContainSubstring("{kind: Read, addr: 0x40000004, len: 4, " +
			"before: 0x00000000, after: 0x00000000}"))
	})
})
