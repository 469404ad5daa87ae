package snowfall

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/snowfall/shaders"
	"github.com/gekko3d/snowfall/snow"
)

// SnowRenderModule draws the snow.Field resource as one instanced quad batch.
// It needs the WindowState, AssetServer and snow.Field resources, so install it
// after PlatformWindowModule, AssetServerModule and SnowfallModule.
type SnowRenderModule struct {
	Atlas AtlasConfig
	// Seed drives the generated atlas when no sheet can be loaded.
	Seed uint64
}

type quadVertex struct {
	Pos [2]float32 `gekko:"layout" location:"0" format:"float2"`
}

// spriteInstanceLayout mirrors snow.SpriteInstance field for field.
type spriteInstanceLayout struct {
	Model0 [4]float32 `gekko:"layout" location:"1" format:"float4"`
	Model1 [4]float32 `gekko:"layout" location:"2" format:"float4"`
	Model2 [4]float32 `gekko:"layout" location:"3" format:"float4"`
	Model3 [4]float32 `gekko:"layout" location:"4" format:"float4"`
	UV01   [4]float32 `gekko:"layout" location:"5" format:"float4"`
	UV23   [4]float32 `gekko:"layout" location:"6" format:"float4"`
}

// Unit quad corners in the same order as snow.TexRegion.
var (
	quadVertices = []quadVertex{
		{Pos: [2]float32{-1, -1}},
		{Pos: [2]float32{1, -1}},
		{Pos: [2]float32{1, 1}},
		{Pos: [2]float32{-1, 1}},
	}
	quadIndices = []uint16{0, 1, 2, 0, 2, 3}
)

type snowRenderState struct {
	pipeline       *wgpu.RenderPipeline
	vertexBuffer   *wgpu.Buffer
	indexBuffer    *wgpu.Buffer
	instanceBuffer *wgpu.Buffer
	viewBuffer     *wgpu.Buffer
	atlasTexture   *wgpu.Texture
	atlasView      *wgpu.TextureView
	sampler        *wgpu.Sampler
	bindGroup      *wgpu.BindGroup

	instances     []snow.SpriteInstance
	instanceCount uint32
}

func (mod SnowRenderModule) Install(app *App, cmd *Commands) {
	ws := Resource[WindowState](app)
	server := Resource[AssetServer](app)
	field := Resource[snow.Field](app)
	if ws == nil || server == nil || field == nil {
		panic("SnowRenderModule requires WindowState, AssetServer and snow.Field resources")
	}

	gpuState, err := createGpuState(ws)
	if err != nil {
		cmd.Logger().Errorf("Failed to initialize GPU: %v", err)
		panic(err)
	}

	atlasId := mod.loadAtlas(server, cmd.Logger())
	atlas, _ := server.Texture(atlasId)

	rs, err := createSnowRenderState(gpuState, &atlas, mod.Atlas.Filter, field)
	if err != nil {
		gpuState.release()
		cmd.Logger().Errorf("Failed to create snow renderer: %v", err)
		panic(err)
	}
	cmd.Logger().Debugf("Snow renderer ready: %d instances, surface %dx%d",
		rs.instanceCount, gpuState.surfaceConfig.Width, gpuState.surfaceConfig.Height)

	cmd.AddResources(gpuState, rs)
	app.UseSystem(
		System(snowUploadSystem).
			InStage(PreRender).
			InState(OnExecute(StateRunning)),
	)
	app.UseSystem(
		System(snowRenderSystem).
			InStage(Render).
			InState(OnExecute(StateRunning)),
	)
	app.UseSystem(
		System(snowReleaseSystem).
			InStage(PostRender).
			InState(OnExit(StateShutdown)),
	)
}

// loadAtlas prefers the configured sprite sheet and falls back to a generated one.
func (mod SnowRenderModule) loadAtlas(server *AssetServer, logger Logger) AssetId {
	cfg := mod.Atlas
	if cfg.Path != "" {
		id, err := server.LoadAtlas(cfg.Path, cfg.Columns, cfg.Rows, cfg.CellSize)
		if err == nil {
			logger.Infof("Loaded snowflake atlas %s (%dx%d cells)", cfg.Path, cfg.Columns, cfg.Rows)
			return id
		}
		if errors.Is(err, fs.ErrNotExist) {
			logger.Infof("Snowflake atlas %s not found, generating one", cfg.Path)
		} else {
			logger.Warnf("Failed to load snowflake atlas, generating one: %v", err)
		}
	}
	return server.CreateSnowflakeAtlas(cfg.Columns, cfg.Rows, cfg.CellSize, snow.NewSource(mod.Seed))
}

func createSnowRenderState(gpuState *GpuState, atlas *TextureAsset, filter string, field *snow.Field) (rs *snowRenderState, err error) {
	rs = &snowRenderState{}
	defer func() {
		if err != nil {
			rs.release()
			rs = nil
		}
	}()

	rs.pipeline, err = createRenderPipeline("Snowflakes", shaders.SnowflakeWGSL, []wgpu.VertexBufferLayout{
		createVertexBufferLayout(quadVertex{}, wgpu.VertexStepModeVertex),
		createVertexBufferLayout(spriteInstanceLayout{}, wgpu.VertexStepModeInstance),
	}, gpuState)
	if err != nil {
		return rs, err
	}

	if rs.vertexBuffer, err = createBuffer("quadVertices", wgpu.ToBytes(quadVertices), gpuState, wgpu.BufferUsageVertex); err != nil {
		return rs, err
	}
	if rs.indexBuffer, err = createBuffer("quadIndices", wgpu.ToBytes(quadIndices), gpuState, wgpu.BufferUsageIndex); err != nil {
		return rs, err
	}

	rs.instances = field.Instances(make([]snow.SpriteInstance, 0, field.Len()))
	rs.instanceCount = uint32(len(rs.instances))
	if rs.instanceCount > 0 {
		rs.instanceBuffer, err = createBuffer("snowInstances", wgpu.ToBytes(rs.instances), gpuState, wgpu.BufferUsageVertex|wgpu.BufferUsageCopyDst)
		if err != nil {
			return rs, err
		}
	}

	layout := field.Layout()
	viewProj := snow.ViewProjection(float32(layout.Width), float32(layout.Height))
	if rs.viewBuffer, err = createBuffer("viewProjection", wgpu.ToBytes(viewProj[:]), gpuState, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst); err != nil {
		return rs, err
	}

	if rs.atlasTexture, rs.atlasView, err = createTextureFromAsset(atlas, gpuState); err != nil {
		return rs, err
	}

	filterMode, err := wgpuFilterMode(filter)
	if err != nil {
		return rs, err
	}
	rs.sampler, err = gpuState.device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     filterMode,
		MinFilter:     filterMode,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0.,
		LodMaxClamp:   1.,
		Compare:       wgpu.CompareFunctionUndefined,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return rs, fmt.Errorf("create sampler: %w", err)
	}

	bindGroupLayout := rs.pipeline.GetBindGroupLayout(0)
	defer bindGroupLayout.Release()

	rs.bindGroup, err = gpuState.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Snowflakes",
		Layout: bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: rs.viewBuffer, Size: wgpu.WholeSize},
			{Binding: 1, TextureView: rs.atlasView},
			{Binding: 2, Sampler: rs.sampler},
		},
	})
	if err != nil {
		return rs, fmt.Errorf("create bind group: %w", err)
	}
	return rs, nil
}

func (rs *snowRenderState) release() {
	if rs.bindGroup != nil {
		rs.bindGroup.Release()
	}
	if rs.sampler != nil {
		rs.sampler.Release()
	}
	if rs.atlasView != nil {
		rs.atlasView.Release()
	}
	if rs.atlasTexture != nil {
		rs.atlasTexture.Release()
	}
	if rs.viewBuffer != nil {
		rs.viewBuffer.Release()
	}
	if rs.instanceBuffer != nil {
		rs.instanceBuffer.Release()
	}
	if rs.indexBuffer != nil {
		rs.indexBuffer.Release()
	}
	if rs.vertexBuffer != nil {
		rs.vertexBuffer.Release()
	}
	if rs.pipeline != nil {
		rs.pipeline.Release()
	}
	*rs = snowRenderState{}
}

func snowUploadSystem(field *snow.Field, rs *snowRenderState, gpuState *GpuState, cmd *Commands) {
	if rs.instanceBuffer == nil {
		return
	}
	rs.instances = field.Instances(rs.instances[:0])
	if err := gpuState.queue.WriteBuffer(rs.instanceBuffer, 0, wgpu.ToBytes(rs.instances)); err != nil {
		cmd.Logger().Warnf("Failed to upload snowflake instances: %v", err)
	}
}

func snowRenderSystem(rs *snowRenderState, gpuState *GpuState, cmd *Commands) {
	nextTexture, err := gpuState.surface.GetCurrentTexture()
	if err != nil {
		cmd.Logger().Warnf("Skipping frame, surface texture unavailable: %v", err)
		return
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		cmd.Logger().Warnf("Skipping frame, CreateView failed: %v", err)
		return
	}
	defer view.Release()

	encoder, err := gpuState.device.CreateCommandEncoder(nil)
	if err != nil {
		cmd.Logger().Warnf("Skipping frame, CreateCommandEncoder failed: %v", err)
		return
	}
	defer encoder.Release()

	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
			},
		},
	})
	defer renderPass.Release()

	if rs.instanceCount > 0 {
		renderPass.SetPipeline(rs.pipeline)
		renderPass.SetBindGroup(0, rs.bindGroup, nil)
		renderPass.SetVertexBuffer(0, rs.vertexBuffer, 0, wgpu.WholeSize)
		renderPass.SetVertexBuffer(1, rs.instanceBuffer, 0, wgpu.WholeSize)
		renderPass.SetIndexBuffer(rs.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
		renderPass.DrawIndexed(uint32(len(quadIndices)), rs.instanceCount, 0, 0, 0)
	}

	if err = renderPass.End(); err != nil {
		cmd.Logger().Warnf("Render pass End failed: %v", err)
		return
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		cmd.Logger().Warnf("Encoder Finish failed: %v", err)
		return
	}
	defer cmdBuffer.Release()

	gpuState.queue.Submit(cmdBuffer)
	gpuState.surface.Present()
}

func snowReleaseSystem(rs *snowRenderState, gpuState *GpuState, cmd *Commands) {
	cmd.Logger().Debugf("Releasing GPU resources")
	rs.release()
	gpuState.release()
}
