package device

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/devblok/litecraft/core"
	vk "github.com/devblok/vulkan"
	log "github.com/sirupsen/logrus"
)

// DefaultVulkanApplicationInfo application info describes a Vulkan application
var DefaultVulkanApplicationInfo = &vk.ApplicationInfo{
	SType:              vk.StructureTypeApplicationInfo,
	ApiVersion:         vk.MakeVersion(1, 0, 0),
	ApplicationVersion: vk.MakeVersion(1, 0, 0),
	PApplicationName:   "Litecraft\x00",
	PEngineName:        "Litecraft\x00",
}

// NewInstance creates a Vulkan instance. procAddr is the instance proc address
// provided by the windowing system, when nil the default loader is used.
func NewInstance(appInfo *vk.ApplicationInfo, procAddr unsafe.Pointer, cfg InstanceConfiguration) (*Instance, error) {
	if cfg.DebugMode {
		cfg.Layers = append(cfg.Layers, "VK_LAYER_LUNARG_standard_validation")
		cfg.Extensions = append(cfg.Extensions, "VK_EXT_debug_report")
	}

	if procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return nil, errors.New("vk.SetDefaultGetInstanceProcAddr(): " + err.Error())
		}
	} else {
		vk.SetGetInstanceProcAddr(procAddr)
	}

	if err := vk.Init(); err != nil {
		return nil, errors.New("vk.Init(): " + err.Error())
	}

	extensions := core.SafeStrings(cfg.Extensions)
	layers := core.SafeStrings(cfg.Layers)
	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
	}

	var instance vk.Instance
	if err := vk.Error(vk.CreateInstance(&instanceInfo, nil, &instance)); err != nil {
		return nil, errors.New("vk.CreateInstance(): " + err.Error())
	}
	vk.InitInstance(instance)

	physicalDevices, err := enumerateDevices(instance)
	if err != nil {
		vk.DestroyInstance(instance, nil)
		return nil, err
	}

	return &Instance{
		configuration:    cfg,
		instance:         instance,
		availableDevices: physicalDevices,
	}, nil
}

// Instance describes a Vulkan API Instance
type Instance struct {
	configuration InstanceConfiguration

	availableDevices []vk.PhysicalDevice
	surface          vk.Surface
	instance         vk.Instance
}

func enumerateDevices(instance vk.Instance) ([]vk.PhysicalDevice, error) {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &deviceCount, nil)); err != nil {
		return nil, fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}
	availableDevices := make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &deviceCount, availableDevices)); err != nil {
		return nil, fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}
	return availableDevices, nil
}

// PhysicalDevicesInfo returns a struct for each Physical Device
// along with info about those devices
func (v *Instance) PhysicalDevicesInfo() []PhysicalDeviceInfo {
	pdi := make([]PhysicalDeviceInfo, len(v.availableDevices))
	for i := 0; i < len(v.availableDevices); i++ {
		// Get extension info
		var numDeviceExtensions uint32
		if err := vk.Error(vk.EnumerateDeviceExtensionProperties(v.availableDevices[i], "", &numDeviceExtensions, nil)); err != nil {
			pdi[i].Invalid = true
		}
		deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
		if err := vk.Error(vk.EnumerateDeviceExtensionProperties(v.availableDevices[i], "", &numDeviceExtensions, deviceExt)); err != nil {
			pdi[i].Invalid = true
		}
		for _, ext := range deviceExt {
			ext.Deref()
			pdi[i].Extensions = append(pdi[i].Extensions, vk.ToString(ext.ExtensionName[:]))
		}

		// Get layers info
		var numDeviceLayers uint32
		if err := vk.Error(vk.EnumerateDeviceLayerProperties(v.availableDevices[i], &numDeviceLayers, nil)); err != nil {
			pdi[i].Invalid = true
		}
		deviceLayers := make([]vk.LayerProperties, numDeviceLayers)
		if err := vk.Error(vk.EnumerateDeviceLayerProperties(v.availableDevices[i], &numDeviceLayers, deviceLayers)); err != nil {
			pdi[i].Invalid = true
		}
		for _, layer := range deviceLayers {
			layer.Deref()
			pdi[i].Layers = append(pdi[i].Layers, vk.ToString(layer.LayerName[:]))
		}

		// Get memory info
		var memoryProperties vk.PhysicalDeviceMemoryProperties
		vk.GetPhysicalDeviceMemoryProperties(v.availableDevices[i], &memoryProperties)
		memoryProperties.Deref()
		for iMem := (uint32)(0); iMem < memoryProperties.MemoryHeapCount; iMem++ {
			memoryProperties.MemoryHeaps[iMem].Deref()
			pdi[i].Memory += memoryProperties.MemoryHeaps[iMem].Size
		}

		// Get general device info
		var physicalDeviceProperties vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(v.availableDevices[i], &physicalDeviceProperties)
		physicalDeviceProperties.Deref()
		pdi[i].ID = (int)(physicalDeviceProperties.DeviceID)
		pdi[i].VendorID = (int)(physicalDeviceProperties.VendorID)
		pdi[i].Name = vk.ToString(physicalDeviceProperties.DeviceName[:])
		pdi[i].DriverVersion = (int)(physicalDeviceProperties.DriverVersion)
	}
	return pdi
}

// SetSurface sets the window surface for rendering
func (v *Instance) SetSurface(pSurface unsafe.Pointer) {
	v.surface = vk.SurfaceFromPointer(uintptr(pSurface))
}

// Surface returns the window surface, if it's not set
// it returns a valid but empty surface
func (v *Instance) Surface() vk.Surface {
	if v.surface == nil {
		return vk.NullSurface
	}
	return v.surface
}

// Inner returns the inner vk.Instance handle
func (v *Instance) Inner() vk.Instance {
	return v.instance
}

// AvailableDevices returns handles of Physical Devices
func (v *Instance) AvailableDevices() []vk.PhysicalDevice {
	return v.availableDevices
}

// Destroy destroys the instance, every Display created
// from it has to be destroyed first
func (v *Instance) Destroy() {
	if v.surface != nil {
		vk.DestroySurface(v.instance, v.surface, nil)
		v.surface = nil
	}
	v.availableDevices = nil
	vk.DestroyInstance(v.instance, nil)
}

// NewDisplay creates a logical device on the physical device at
// deviceIndex and returns it as the graphics context resources are
// finished with. The Display is only usable from the goroutine
// that created it.
func NewDisplay(instance *Instance, deviceIndex int) (*Display, error) {
	devices := instance.AvailableDevices()
	if deviceIndex < 0 || deviceIndex >= len(devices) {
		return nil, fmt.Errorf("vulkan error: no physical device %d, %d available", deviceIndex, len(devices))
	}
	physicalDevice := devices[deviceIndex]

	graphicsQueueIndex, err := findGraphicsQueue(physicalDevice)
	if err != nil {
		return nil, err
	}

	queueInfos := []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: graphicsQueueIndex,
		QueueCount:       1,
		PQueuePriorities: []float32{1},
	}}

	var logicalDevice vk.Device
	dci := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: uint32(len(queueInfos)),
		PQueueCreateInfos:    queueInfos,
	}
	if err := vk.Error(vk.CreateDevice(physicalDevice, &dci, nil, &logicalDevice)); err != nil {
		return nil, errors.New("vk.CreateDevice(): " + err.Error())
	}

	var deviceQueue vk.Queue
	vk.GetDeviceQueue(logicalDevice, graphicsQueueIndex, 0, &deviceQueue)

	allocator, err := NewMemoryAllocator(logicalDevice, physicalDevice)
	if err != nil {
		vk.DestroyDevice(logicalDevice, nil)
		return nil, err
	}

	return &Display{
		physicalDevice: physicalDevice,
		logicalDevice:  logicalDevice,
		deviceQueue:    deviceQueue,
		allocator:      allocator,
		logger:         log.WithField("component", "display"),
	}, nil
}

func findGraphicsQueue(physicalDevice vk.PhysicalDevice) (uint32, error) {
	var queueFamilyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(physicalDevice, &queueFamilyCount, nil)
	if queueFamilyCount == 0 {
		return 0, errors.New("vk.GetPhysicalDeviceQueueFamilyProperties(): no queuefamilies on GPU")
	}
	queueFamilies := make([]vk.QueueFamilyProperties, queueFamilyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(physicalDevice, &queueFamilyCount, queueFamilies)

	for i := uint32(0); i < queueFamilyCount; i++ {
		queueFamilies[i].Deref()
		if queueFamilies[i].QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
			return i, nil
		}
	}
	return 0, errors.New("vulkan error: could not find a queue family with graphics support")
}

// Display is the Vulkan graphics context. It implements core.Display.
type Display struct {
	physicalDevice vk.PhysicalDevice
	logicalDevice  vk.Device
	deviceQueue    vk.Queue
	allocator      *MemoryAllocator
	logger         log.FieldLogger
}

// Device returns the logical device handle
func (d *Display) Device() vk.Device {
	return d.logicalDevice
}

// UploadTexture implements core.Display. The image is linear and host visible
// so the pixels are written straight into it, no staging buffer is involved.
func (d *Display) UploadTexture(name string, pixels *core.Pixels) (core.Texture, error) {
	image, err := NewImage(d.logicalDevice, uint32(pixels.Width), uint32(pixels.Height))
	if err != nil {
		return nil, err
	}

	var req vk.MemoryRequirements
	vk.GetImageMemoryRequirements(d.logicalDevice, image.image, &req)
	req.Deref()

	memory, err := d.allocator.Malloc(req, vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit)
	if err != nil {
		image.Release()
		return nil, err
	}
	image.memory = memory

	if err := vk.Error(vk.BindImageMemory(d.logicalDevice, image.image, memory.Get(), vk.DeviceSize(memory.Offset()))); err != nil {
		image.Release()
		return nil, errors.New("vk.BindImageMemory(): " + err.Error())
	}

	var layout vk.SubresourceLayout
	vk.GetImageSubresourceLayout(d.logicalDevice, image.image, &vk.ImageSubresource{
		AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
	}, &layout)
	layout.Deref()

	mapped, err := memory.Map()
	if err != nil {
		image.Release()
		return nil, err
	}
	dst := unsafe.Add(mapped, int(layout.Offset))
	for y := 0; y < pixels.Height; y++ {
		vk.Memcopy(unsafe.Add(dst, y*int(layout.RowPitch)), pixels.Row(y))
	}
	memory.Unmap()

	if err := image.createView(); err != nil {
		image.Release()
		return nil, err
	}

	d.logger.WithFields(log.Fields{
		"texture": name,
		"width":   pixels.Width,
		"height":  pixels.Height,
	}).Debug("texture uploaded")

	return &Texture{
		name:   name,
		width:  pixels.Width,
		height: pixels.Height,
		image:  image,
	}, nil
}

// CompileShader implements core.Display by creating a shader module per stage
func (d *Display) CompileShader(name string, stages []core.ShaderStage) (core.Shader, error) {
	shader := &Shader{
		name:    name,
		device:  d.logicalDevice,
		modules: make(map[core.ShaderType]vk.ShaderModule, len(stages)),
	}

	for _, stage := range stages {
		if _, err := stageFlag(stage.Type); err != nil {
			shader.Destroy()
			return nil, err
		}

		smci := vk.ShaderModuleCreateInfo{
			SType:    vk.StructureTypeShaderModuleCreateInfo,
			CodeSize: uint(len(stage.Code)),
			PCode:    core.SliceUint32(stage.Code),
		}

		var module vk.ShaderModule
		if err := vk.Error(vk.CreateShaderModule(d.logicalDevice, &smci, nil, &module)); err != nil {
			shader.Destroy()
			return nil, fmt.Errorf("vk.CreateShaderModule(type %s): %s", stage.Type, err.Error())
		}
		shader.modules[stage.Type] = module
		shader.stages = append(shader.stages, stage.Type)
	}
	return shader, nil
}

// Destroy waits for the device and destroys it, every
// texture and shader has to be destroyed before
func (d *Display) Destroy() {
	vk.DeviceWaitIdle(d.logicalDevice)
	vk.DestroyDevice(d.logicalDevice, nil)
}
