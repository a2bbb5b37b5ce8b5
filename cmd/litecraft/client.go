// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"errors"

	"github.com/devblok/litecraft/core"
	"github.com/devblok/litecraft/core/resource"
	"github.com/devblok/litecraft/device"
	"github.com/devblok/litecraft/gui"
	"github.com/gobuffalo/packr"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
)

// builtinAssets are packed into the binary and looked up last
var builtinAssets = packr.NewBox("./assets")

func newWindow(cfg core.WindowConfiguration) (*sdl.Window, error) {
	return sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_VULKAN|sdl.WINDOW_RESIZABLE)
}

// runClient owns the window, the display and the resource manager,
// all of them live on the locked main thread.
func runClient(cfg *core.Configuration, opts *options) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return err
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		return err
	}
	defer sdl.VulkanUnloadLibrary()

	window, err := newWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	instance, err := device.NewInstance(device.DefaultVulkanApplicationInfo, sdl.VulkanGetVkGetInstanceProcAddr(), device.InstanceConfiguration{
		DebugMode:  opts.debug,
		Extensions: window.VulkanGetInstanceExtensions(),
	})
	if err != nil {
		return err
	}
	defer instance.Destroy()

	surface, err := window.VulkanCreateSurface(instance.Inner())
	if err != nil {
		return err
	}
	instance.SetSurface(surface)

	display, err := device.NewDisplay(instance, opts.device)
	if err != nil {
		return err
	}
	defer display.Destroy()

	sources, err := resource.NewSources(cfg.Assets, resource.NewBoxSource(builtinAssets))
	if err != nil {
		return err
	}
	manager, err := resource.New(cfg, resource.WithSource(sources))
	if err != nil {
		sources.Close()
		return err
	}
	defer func() {
		if err := manager.Close(); err != nil {
			log.WithError(err).Warn("closing resources failed")
		}
	}()

	menu := mainMenu(cfg.Assets.Namespace)
	if err := menu.Load(manager); err != nil {
		return err
	}
	if _, err := manager.LoadShader(guiShader, display); err != nil {
		if !errors.Is(err, resource.ErrNotFound) {
			return err
		}
		log.WithError(err).Warn("gui shader missing, gui will not be drawn")
	}

	return loop(cfg, manager, display, menu)
}

func loop(cfg *core.Configuration, manager *resource.Manager, display core.Display, menu *gui.Scene) error {
	time := core.NewTime(cfg.Time)
	defer time.Stop()

	logEvery := max(time.Fps(), 1)
	var frames int
	for {
		select {
		case <-time.EventTicker().C:
			for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch et := event.(type) {
				case *sdl.KeyboardEvent:
					if et.Keysym.Sym == sdl.K_ESCAPE {
						log.Info("event loop exited")
						return nil
					}
				case *sdl.WindowEvent:
					if et.Event == sdl.WINDOWEVENT_RESIZED {
						manager.SetSize(resource.Size{
							Width:  uint32(et.Data1),
							Height: uint32(et.Data2),
						})
					}
				case *sdl.QuitEvent:
					log.Info("event loop exited")
					return nil
				}
			}
		case <-time.FpsTicker().C:
			manager.Tick(display)

			frame := gui.NewFrame(manager)
			menu.Draw(frame)

			frames++
			if frames%logEvery == 0 {
				log.WithFields(log.Fields{
					"seconds": manager.Time(),
					"quads":   len(frame.Quads()),
					"skipped": frame.Skipped(),
					"loading": manager.Textures().Pending(),
				}).Debug("frame")
			}
		}
	}
}
