// Package device implements the Vulkan backed graphics context used to
// finish resource loading: texture upload and shader module creation.
package device

import vk "github.com/devblok/vulkan"

// PhysicalDeviceInfo describes available physical properties of a rendering device
type PhysicalDeviceInfo struct {
	ID            int           `json:"id"`
	VendorID      int           `json:"vendorId"`
	DriverVersion int           `json:"driverVersion"`
	Name          string        `json:"name"`
	Invalid       bool          `json:"invalid"`
	Extensions    []string      `json:"extensions"`
	Layers        []string      `json:"layers"`
	Memory        vk.DeviceSize `json:"memory"`
}

// InstanceConfiguration describes how the Vulkan instance is created
type InstanceConfiguration struct {
	DebugMode  bool
	Extensions []string
	Layers     []string
}
