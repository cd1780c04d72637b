package harness

import (
	"errors"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/ezrec/ledseq/cpu"
	"github.com/ezrec/ledseq/emulator"
	"github.com/ezrec/ledseq/io"
)

var _ = Describe("Clock", func() {
	var (
		mockCtrl  *gomock.Controller
		mockProbe *MockProbe
		engine    sim.Engine
		emu       *emulator.Emulator
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockProbe = NewMockProbe(mockCtrl)
		engine = sim.NewSerialEngine()

		rom, err := io.NewRom([]uint32{
			cpu.BLU_ON, cpu.MakeDelay(4), cpu.BLU_OFF, cpu.RETURN,
		}, 16)
		Expect(err).ToNot(HaveOccurred())

		emu = emulator.NewEmulator(rom)
		emu.Reset()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should run the tick budget", func() {
		mockProbe.EXPECT().Sample(gomock.Any()).Return(nil).Times(50)

		clock := NewBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			WithTicks(50).
			WithEmulator(emu).
			WithProbe(mockProbe).
			Build("Clock")

		Expect(clock.Run()).To(Succeed())
		Expect(clock.Ticks()).To(Equal(50))
		Expect(emu.Ticks()).To(Equal(50))
		Expect(float64(engine.CurrentTime())).To(BeNumerically(">", 0))
	})

	It("should deliver snapshots in order", func() {
		var blue []bool
		var ticks []int
		mockProbe.EXPECT().
			Sample(gomock.Any()).
			DoAndReturn(func(snap emulator.Snapshot) error {
				ticks = append(ticks, snap.Tick)
				blue = append(blue, snap.Leds[io.LED_BLUE])
				return nil
			}).
			Times(24)

		clock := NewBuilder().
			WithEngine(engine).
			WithTicks(24).
			WithEmulator(emu).
			WithProbe(mockProbe).
			Build("Clock")

		Expect(clock.Run()).To(Succeed())

		Expect(ticks).To(HaveLen(24))
		Expect(ticks[0]).To(Equal(1))
		Expect(ticks[23]).To(Equal(24))

		// Blue is lit for ticks 4 through 15 and again at 24.
		for n, on := range blue {
			tick := ticks[n]
			Expect(on).To(Equal((tick >= 4 && tick < 16) || tick == 24), "tick %v", tick)
		}
	})

	It("should stop on a probe error", func() {
		broken := errors.New("broken")
		mockProbe.EXPECT().Sample(gomock.Any()).Return(nil).Times(2)
		mockProbe.EXPECT().Sample(gomock.Any()).Return(broken)

		clock := NewBuilder().
			WithEngine(engine).
			WithTicks(100).
			WithEmulator(emu).
			WithProbe(mockProbe).
			Build("Clock")

		err := clock.Run()
		Expect(errors.Is(err, broken)).To(BeTrue())

		var re *emulator.ErrRuntime
		Expect(errors.As(err, &re)).To(BeTrue())
		Expect(re.Tick).To(Equal(3))
		Expect(clock.Ticks()).To(Equal(2))
	})

	It("should do nothing with an empty budget", func() {
		clock := NewBuilder().
			WithEngine(engine).
			WithEmulator(emu).
			WithProbe(mockProbe).
			Build("Clock")

		Expect(clock.Run()).To(Succeed())
		Expect(clock.Ticks()).To(Equal(0))
		Expect(emu.Ticks()).To(Equal(0))
	})

	It("should refuse to build without an emulator", func() {
		Expect(func() { NewBuilder().Build("Clock") }).To(Panic())
	})
})
