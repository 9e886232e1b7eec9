package matchers_test

import (
	"slices"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/regmock/access"
	"github.com/sarchlab/regmock/matchers"
)

const (
	regA access.Addr = 0x4000_0000
	regB access.Addr = 0x4000_0004
	regC access.Addr = 0x4000_0008
)

func w(addr access.Addr, value uint64) access.Record {
	return access.New(access.KindWrite, addr, 4, 0, value)
}

func r(addr access.Addr, value uint64) access.Record {
	return access.New(access.KindRead, addr, 4, value, value)
}

func seq(records ...access.Record) func(func(access.Record) bool) {
	return slices.Values(records)
}

func reasonOf(err error) string {
	var me *matchers.MatchError
	Expect(err).To(BeAssignableToTypeOf(me))

	return err.(*matchers.MatchError).Reason
}

var _ = Describe("ReadLast", func() {
	It("should succeed when the last access to the target is a read", func() {
		Expect(matchers.ReadLast(regA).Match(seq(w(regA, 1), r(regA, 1), w(regB, 2)))).
			To(Succeed())
	})

	It("should fail when the target was not accessed", func() {
		err := matchers.ReadLast(regA).Match(seq(w(regB, 1)))

		Expect(reasonOf(err)).To(ContainSubstring("was not accessed"))
		Expect(err.(*matchers.MatchError).Name).To(Equal("ReadLastMatcher"))
	})

	It("should fail when the last access is a write", func() {
		err := matchers.ReadLast(regA).Match(seq(r(regA, 0), w(regA, 1), r(regB, 0)))

		Expect(reasonOf(err)).To(ContainSubstring("was: Write"))
	})
})

var _ = Describe("NotWritten", func() {
	It("should ignore reads and other registers", func() {
		Expect(matchers.NotWritten(regA).Match(seq(r(regA, 0), w(regB, 1)))).To(Succeed())
	})

	It("should report the number of writes", func() {
		err := matchers.NotWritten(regA).Match(seq(w(regA, 1), w(regA, 1)))

		Expect(reasonOf(err)).To(ContainSubstring("written to 2 times"))
	})
})

var _ = Describe("WrittenOnce", func() {
	It("should succeed with one write among reads", func() {
		Expect(matchers.WrittenOnce(regA).Match(
			seq(r(regA, 0), r(regA, 0), w(regA, 1), r(regA, 1)))).To(Succeed())
	})

	It("should fail without writes", func() {
		err := matchers.WrittenOnce(regA).Match(seq(r(regA, 0)))

		Expect(reasonOf(err)).To(ContainSubstring("written to 0 times"))
	})

	It("should fail with two writes", func() {
		err := matchers.WrittenOnce(regA).Match(seq(w(regA, 1), r(regB, 0), w(regA, 1)))

		Expect(reasonOf(err)).To(ContainSubstring("written to 2 times"))
	})

	It("should name the register when a resolver is given", func() {
		resolver := access.MapResolver(map[access.Addr]string{regA: "TIMER.CTRL"})
		err := matchers.WrittenOnce(regA, matchers.WithResolver(resolver)).Match(seq())

		Expect(reasonOf(err)).To(Equal(
			"Register: 0x40000000 (TIMER.CTRL) was written to 0 times"))
	})
})

var _ = Describe("WrittenBefore", func() {
	It("should succeed when target is written first and other later", func() {
		Expect(matchers.WrittenBefore(regA, regB).Match(
			seq(w(regA, 1), r(regB, 0), w(regC, 1), w(regA, 2), w(regB, 3)))).
			To(Succeed())
	})

	It("should fail when nothing is written", func() {
		err := matchers.WrittenBefore(regA, regB).Match(seq(r(regA, 0)))

		Expect(reasonOf(err)).To(ContainSubstring("No writes"))
	})

	It("should fail when other is written first", func() {
		err := matchers.WrittenBefore(regA, regB).Match(seq(w(regB, 1), w(regA, 1), w(regB, 1)))

		Expect(reasonOf(err)).To(ContainSubstring("was written to before"))
	})

	It("should fail when other is never written after target", func() {
		err := matchers.WrittenBefore(regA, regB).Match(seq(w(regA, 1), w(regA, 2)))

		Expect(reasonOf(err)).To(ContainSubstring("was not written to after"))
	})
})

var _ = Describe("AllWrittenBefore", func() {
	It("should succeed for [A, A, B]", func() {
		Expect(matchers.AllWrittenBefore(regA, regB).Match(
			seq(w(regA, 1), w(regA, 2), w(regB, 1)))).To(Succeed())
	})

	It("should fail for [A, B, A]", func() {
		err := matchers.AllWrittenBefore(regA, regB).Match(
			seq(w(regA, 1), w(regB, 1), w(regA, 2)))

		Expect(reasonOf(err)).To(ContainSubstring("was written to after"))
	})

	It("should succeed vacuously", func() {
		Expect(matchers.AllWrittenBefore(regA, regB).Match(seq(r(regA, 0), w(regC, 1)))).
			To(Succeed())
	})

	It("should succeed when only other is written", func() {
		Expect(matchers.AllWrittenBefore(regA, regB).Match(seq(w(regB, 1), w(regB, 2)))).
			To(Succeed())
	})

	It("should ignore reads of target after other is written", func() {
		Expect(matchers.AllWrittenBefore(regA, regB).Match(
			seq(w(regA, 1), w(regB, 1), r(regA, 1)))).To(Succeed())
	})
})

var _ = Describe("WrittenSequence", func() {
	interleaved := seq(
		w(regA, 0x11), r(regB, 0), w(regB, 0x99),
		w(regA, 0x22), r(regA, 0x22),
		w(regA, 0x33),
	)

	It("should succeed with exactly the expected values", func() {
		Expect(matchers.WrittenSequence(regA, []uint64{0x11, 0x22, 0x33}).Match(interleaved)).
			To(Succeed())
	})

	It("should report surplus writes", func() {
		err := matchers.WrittenSequence(regA, []uint64{0x11, 0x22, 0x33}).Match(
			seq(w(regA, 0x11), w(regA, 0x22), w(regA, 0x33), w(regA, 0x44)))

		Expect(reasonOf(err)).To(Equal(
			"Found more writes to 0x40000000 than expected. Expected 3 writes.\n" +
				"Values of the surplus writes are:\n0x00000044"))
	})

	It("should report missing writes", func() {
		err := matchers.WrittenSequence(regA, []uint64{0x11, 0x22, 0x33}).Match(
			seq(w(regA, 0x11)))

		Expect(reasonOf(err)).To(Equal(
			"Expected more writes to 0x40000000. Only 1 values were written.\n" +
				"Values of the remaining expected writes are:\n0x00000022\n0x00000033"))
	})

	It("should report the first differing value", func() {
		err := matchers.WrittenSequence(regA, []uint64{0x11, 0x22, 0x33}).Match(
			seq(w(regA, 0x11), w(regA, 0x23), w(regA, 0x33)))

		Expect(reasonOf(err)).To(Equal(
			"Actual writes to 0x40000000 differ from expected writes at index: 1 " +
				"with actual: 0x00000023 and expected: 0x00000022"))
	})

	It("should not be affected by later changes to the expected slice", func() {
		values := []uint64{0x11}
		m := matchers.WrittenSequence(regA, values)
		values[0] = 0x12

		Expect(m.Match(seq(w(regA, 0x11)))).To(Succeed())
	})
})

var _ = Describe("LogSequence", func() {
	It("should match partial records pairwise", func() {
		expected := []access.Record{
			access.Read(regA),
			access.WriteValue(regB, 1),
			access.RecordBuilder{}.WithKind(access.KindRead).Build(),
		}

		Expect(matchers.LogSequence(expected).Match(seq(r(regA, 5), w(regB, 1), r(regC, 0)))).
			To(Succeed())
	})

	It("should report the first mismatch", func() {
		err := matchers.LogSequence([]access.Record{access.Read(regA), access.Write(regB)}).
			Match(seq(r(regA, 0), w(regC, 1)))

		reason := reasonOf(err)
		Expect(reason).To(ContainSubstring("at index: 1"))
		Expect(reason).To(ContainSubstring("expected: {kind: Write, addr: 0x40000004}"))
		Expect(reason).To(ContainSubstring("actual:   {kind: Write, addr: 0x40000008"))
	})

	It("should report surplus accesses", func() {
		err := matchers.LogSequence([]access.Record{access.Read(regA)}).
			Match(seq(r(regA, 0), w(regC, 1)))

		Expect(reasonOf(err)).To(HavePrefix("Found more accesses than expected. Expected 1"))
	})

	It("should report missing accesses", func() {
		err := matchers.LogSequence([]access.Record{access.Read(regA), access.Read(regB)}).
			Match(seq())

		Expect(reasonOf(err)).To(ContainSubstring("Only 0 accesses were recorded"))
		Expect(reasonOf(err)).To(ContainSubstring("{kind: Read, addr: 0x40000004}"))
	})
})

var _ = Describe("Filter", func() {
	It("should keep only selected records", func() {
		writes := matchers.Filter(seq(r(regA, 0), w(regA, 1), w(regB, 2)),
			func(rec access.Record) bool { return rec.IsWrite() })

		Expect(slices.Collect(writes)).To(HaveLen(2))
		Expect(matchers.LogSequence([]access.Record{access.Write(regA), access.Write(regB)}).
			Match(writes)).To(Succeed())
	})
})

type fatalRecorder struct {
	messages []string
}

func (f *fatalRecorder) Helper() {}

func (f *fatalRecorder) Fatalf(format string, args ...any) {
	f.messages = append(f.messages, format)
}

var _ = Describe("Given", func() {
	It("should not fail matching logs", func() {
		t := &fatalRecorder{}

		matchers.Given(t, seq(w(regA, 1)), matchers.WrittenOnce(regA))

		Expect(t.messages).To(BeEmpty())
	})

	It("should fail the test with the matcher name", func() {
		t := &fatalRecorder{}

		matchers.Given(t, seq(), matchers.WrittenOnce(regA))

		Expect(t.messages).To(HaveLen(1))
		Expect(t.messages[0]).To(ContainSubstring("Failed to match"))
	})
})

var _ = Describe("Satisfy", func() {
	It("should accept logs, slices and sequences", func() {
		log := access.Log{}
		log.Push(w(regA, 1))

		Expect(log).To(matchers.Satisfy(matchers.WrittenOnce(regA)))
		Expect(&log).To(matchers.Satisfy(matchers.WrittenOnce(regA)))
		Expect(log.Compressed()).To(matchers.Satisfy(matchers.WrittenOnce(regA)))
		Expect([]access.Record{w(regA, 1)}).To(matchers.Satisfy(matchers.WrittenOnce(regA)))
		Expect(seq()).NotTo(matchers.Satisfy(matchers.WrittenOnce(regA)))
	})

	It("should explain failures", func() {
		m := matchers.Satisfy(matchers.NotWritten(regA))

		ok, err := m.Match([]access.Record{w(regA, 1)})
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
		Expect(m.FailureMessage(nil)).To(ContainSubstring("NotWrittenMatcher"))
		Expect(m.FailureMessage(nil)).To(ContainSubstring("written to 1 times"))
	})

	It("should reject values that are not accesses", func() {
		_, err := matchers.Satisfy(matchers.NotWritten(regA)).Match(42)

		Expect(err).To(HaveOccurred())
	})
})
