// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/devblok/litecraft/core"
	"github.com/devblok/litecraft/device"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	configPath string
	debug      bool
	device     int
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "litecraft",
		Short:         "Litecraft game client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "litecraft.yaml", "Configuration file")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable Vulkan validation layers")

	run := &cobra.Command{
		Use:   "run",
		Short: "Open the game window",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfiguration(opts.configPath)
			if err != nil {
				return err
			}
			return runClient(cfg, opts)
		},
	}
	run.Flags().IntVarP(&opts.device, "device", "d", 0, "Index of the physical device to render with")

	devices := &cobra.Command{
		Use:   "devices",
		Short: "Print the available rendering devices as JSON",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printDevices(opts)
		},
	}

	root.AddCommand(run, devices)
	return root
}

func loadConfiguration(path string) (*core.Configuration, error) {
	cfg, err := core.LoadConfiguration(path)
	if err != nil {
		return nil, err
	}
	log.SetLevel(cfg.LogLevel())
	log.WithFields(log.Fields{
		"config": path,
		"assets": cfg.Assets.Root,
	}).Debug("configuration loaded")
	return cfg, nil
}

func printDevices(opts *options) error {
	instance, err := device.NewInstance(device.DefaultVulkanApplicationInfo, nil, device.InstanceConfiguration{
		DebugMode: opts.debug,
	})
	if err != nil {
		return err
	}
	defer instance.Destroy()

	bytes, err := json.MarshalIndent(instance.PhysicalDevicesInfo(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", bytes)
	return nil
}
