// This file is part of Gophernes.
//
// Gophernes is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gophernes is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gophernes.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/jetsetilly/gophernes/cartridgeloader"
	"github.com/jetsetilly/gophernes/debugger"
	"github.com/jetsetilly/gophernes/debugger/govern"
	"github.com/jetsetilly/gophernes/debugger/terminal/plainterm"
	"github.com/jetsetilly/gophernes/digest"
	"github.com/jetsetilly/gophernes/disassembly"
	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware"
	"github.com/jetsetilly/gophernes/hardware/preferences"
	"github.com/jetsetilly/gophernes/hardware/television"
	"github.com/jetsetilly/gophernes/hostaudio"
	"github.com/jetsetilly/gophernes/logger"
	"github.com/jetsetilly/gophernes/modalflag"
	"github.com/jetsetilly/gophernes/performance"
	"github.com/jetsetilly/gophernes/pngwriter"
	"github.com/jetsetilly/gophernes/prefs"
	"github.com/jetsetilly/gophernes/recorder"
	"github.com/jetsetilly/gophernes/version"
	"github.com/jetsetilly/gophernes/wavwriter"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "DEBUG", "DISASM", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "DEBUG":
		err = debug(md)

	case "DISASM":
		err = disasm(md)

	case "PERFORMANCE":
		err = perform(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		os.Exit(20)
	}
}

// flags common to all modes that create an emulation
type commonFlags struct {
	spec  *string
	log   *bool
	prefs *string
}

func addCommonFlags(md *modalflag.Modes) commonFlags {
	return commonFlags{
		spec:  md.AddString("tv", "AUTO", "television specification: AUTO, NTSC, PAL, DENDY"),
		log:   md.AddBool("log", false, "echo debugging log to stdout"),
		prefs: md.AddString("prefs", "", "preferences for this session (eg. \"cpu.illegal::stable; apu.decimation::20\")"),
	}
}

// create the television and the NES and attach the cartridge named by the
// filename. the command line preferences stack should be popped after the NES
// has been ended
func newNES(filename string, flgs commonFlags) (*hardware.NES, error) {
	if *flgs.log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}
	logger.Log(logger.Allow, "gophernes", version.Current().String())

	prefs.PushCommandLineStack(*flgs.prefs)

	tv, err := television.NewTelevision(*flgs.spec)
	if err != nil {
		return nil, err
	}

	p, err := preferences.NewPreferences()
	if err != nil {
		return nil, err
	}

	nes, err := hardware.NewNES(environment.MainEmulation, tv, p)
	if err != nil {
		return nil, err
	}

	cartload := cartridgeloader.NewLoader(filename)
	if err := cartload.Load(); err != nil {
		return nil, err
	}

	err = nes.AttachCartridge(cartload.Filename, cartload.Config, cartload.PRG, cartload.CHR)
	if err != nil {
		return nil, err
	}

	return nes, nil
}

func cartridgeArg(md *modalflag.Modes) (string, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return "", fmt.Errorf("cartridge required for %s mode", md)
	case 1:
		return md.GetArg(0), nil
	}
	return "", fmt.Errorf("too many arguments for %s mode", md)
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	flgs := addCommonFlags(md)
	frames := md.AddInt("frames", 0, "number of frames to run for. zero to run until interrupted")
	fpsCap := md.AddBool("fpscap", true, "cap fps to specification")
	audio := md.AddBool("audio", false, "play audio through the host audio device")
	wav := md.AddString("wav", "", "record audio to wav file")
	png := md.AddString("png", "", "save frames as PNG files with the prefix")
	pngEvery := md.AddInt("pngevery", 0, "save every nth frame as PNG. zero saves the last frame only")
	playback := md.AddString("playback", "", "playback recorded input from file")
	showDigest := md.AddBool("digest", false, "print video and audio digests on exit")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	filename, err := cartridgeArg(md)
	if err != nil {
		return err
	}

	nes, err := newNES(filename, flgs)
	if err != nil {
		return err
	}
	defer prefs.PopCommandLineStack()

	nes.TV.SetFPSCap(*fpsCap)

	policy := television.ParsePolicy(nes.Env.Prefs.SinkPolicy.String())
	timeout := nes.Env.Prefs.SinkWait()

	if *audio {
		aud, err := hostaudio.NewAudio(nes.SampleRate(), policy, timeout)
		if err != nil {
			return err
		}
		nes.TV.AddAudioMixer(aud)
	}

	if *wav != "" {
		ww, err := wavwriter.New(*wav, nes.SampleRate())
		if err != nil {
			return err
		}
		nes.TV.AddAudioMixer(ww)
	}

	if *png != "" {
		nes.TV.AddFrameRenderer(pngwriter.NewPNGWriter(*png, *pngEvery, policy, timeout))
	}

	var videoDigest *digest.Video
	var audioDigest *digest.Audio
	if *showDigest {
		videoDigest = digest.NewVideo(nes.TV)
		audioDigest = digest.NewAudio(nes.TV)
	}

	var plb *recorder.Playback
	if *playback != "" {
		plb, err = recorder.NewPlayback(*playback)
		if err != nil {
			return err
		}
		if err := plb.AttachToNES(nes); err != nil {
			return err
		}
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	interrupted := func() bool {
		select {
		case <-intChan:
			return true
		default:
		}
		return false
	}

	if *frames > 0 {
		err = nes.RunForFrameCount(*frames, func(_ int) (govern.State, error) {
			if interrupted() {
				return govern.Ending, nil
			}
			return govern.Running, nil
		})
	} else {
		var performanceBrake int
		_, err = nes.Run(func() (govern.State, error) {
			performanceBrake++
			if performanceBrake < hardware.PerformanceBrake {
				return govern.Running, nil
			}
			performanceBrake = 0
			if interrupted() {
				return govern.Ending, nil
			}
			if plb != nil && plb.EndFrame() {
				return govern.Ending, nil
			}
			return govern.Running, nil
		})
	}

	// end the emulation even if there was an error. this makes sure that
	// everything that has been recorded so far is saved
	if endErr := nes.End(); err == nil {
		err = endErr
	}
	if err != nil {
		return err
	}

	if *showDigest {
		fmt.Fprintf(md.Output, "video: %s\n", videoDigest.Hash())
		fmt.Fprintf(md.Output, "audio: %s\n", audioDigest.Hash())
	}

	return nil
}

func debug(md *modalflag.Modes) error {
	md.NewMode()

	flgs := addCommonFlags(md)
	initScript := md.AddString("initscript", "", "script to run on debugger start")
	record := md.AddString("record", "", "record input to file")
	playback := md.AddString("playback", "", "playback recorded input from file")
	profile := md.AddString("profile", "none", "run debugger through profiler: NONE, CPU, MEM, TRACE, ALL")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	filename, err := cartridgeArg(md)
	if err != nil {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	nes, err := newNES(filename, flgs)
	if err != nil {
		return err
	}
	defer prefs.PopCommandLineStack()

	// the debugger is interactive so the frame rate is always capped
	nes.TV.SetFPSCap(true)

	if *record != "" && *playback != "" {
		return fmt.Errorf("cannot record and playback at the same time")
	}

	var rec *recorder.Recorder
	if *record != "" {
		rec, err = recorder.NewRecorder(*record, nes)
		if err != nil {
			return err
		}
		defer rec.End()
	}

	if *playback != "" {
		plb, err := recorder.NewPlayback(*playback)
		if err != nil {
			return err
		}
		if err := plb.AttachToNES(nes); err != nil {
			return err
		}
	}

	dbg, err := debugger.NewDebugger(nes, plainterm.NewPlainTerminal(nil, nil))
	if err != nil {
		return err
	}
	defer dbg.End()

	err = performance.RunProfiler(prf, "debug", func() error {
		return dbg.Start(*initScript)
	})

	if endErr := nes.End(); err == nil {
		err = endErr
	}

	return err
}

func disasm(md *modalflag.Modes) error {
	md.NewMode()

	bytecode := md.AddBool("bytecode", false, "include bytecode in disassembly")
	decoded := md.AddBool("decoded", false, "include every decoded address, not just those reachable from the vectors")
	grep := md.AddString("grep", "", "only output disassembly lines that contain the search string")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	filename, err := cartridgeArg(md)
	if err != nil {
		return err
	}

	spec := "AUTO"
	nes, err := newNES(filename, commonFlags{spec: &spec, log: new(bool), prefs: new(string)})
	if err != nil {
		return err
	}
	defer prefs.PopCommandLineStack()

	dsm, err := disassembly.FromMemory(nes.Mem, nes.Mem.Cart)
	if err != nil {
		return err
	}

	level := disassembly.EntryLevelBlessed
	if *decoded {
		level = disassembly.EntryLevelDecoded
	}

	if *grep != "" {
		return dsm.Grep(md.Output, *grep, level)
	}

	return dsm.Write(md.Output, 0x8000, 0xffff, level, *bytecode)
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	flgs := addCommonFlags(md)
	fpsCap := md.AddBool("fpscap", false, "cap FPS to specification")
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "none", "produce profiling reports: NONE, CPU, MEM, TRACE, ALL")
	stats := md.AddBool("statsview", false, "run stats server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	filename, err := cartridgeArg(md)
	if err != nil {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	nes, err := newNES(filename, flgs)
	if err != nil {
		return err
	}
	defer prefs.PopCommandLineStack()
	defer nes.End()

	return performance.Check(md.Output, prf, nes, !*fpsCap, *duration, *stats)
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information from version control system (if available)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	b := version.Current()
	fmt.Fprintf(md.Output, "%s %s\n", version.ApplicationName, b.Version)
	if *revision {
		fmt.Fprintln(md.Output, b.Revision)
		fmt.Fprintln(md.Output, b.GoVersion)
	}

	return nil
}
