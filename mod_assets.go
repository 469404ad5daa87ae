package snowfall

import (
	"fmt"
	"image"
	_ "image/png"
	"os"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

type AssetId string

type TextureFormat uint32

const (
	TextureFormatRGBA8Unorm TextureFormat = 0x00000012
)

// TextureAsset holds straight-alpha RGBA8 texels.
type TextureAsset struct {
	version uint
	texels  []uint8
	width   uint32
	height  uint32
	format  TextureFormat
}

func (t TextureAsset) Width() uint32  { return t.width }
func (t TextureAsset) Height() uint32 { return t.height }

type AssetServer struct {
	textures map[AssetId]TextureAsset
}

type AssetServerModule struct{}

func NewAssetServer() *AssetServer {
	return &AssetServer{
		textures: make(map[AssetId]TextureAsset),
	}
}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	if Resource[AssetServer](app) != nil {
		return
	}
	app.addResources(NewAssetServer())
}

func (server *AssetServer) CreateTexture(texels []uint8, texWidth uint32, texHeight uint32, format TextureFormat) AssetId {
	id := makeAssetId()

	server.textures[id] = TextureAsset{
		version: 0,
		texels:  texels,
		width:   texWidth,
		height:  texHeight,
		format:  format,
	}

	return id
}

func (server *AssetServer) Texture(id AssetId) (TextureAsset, bool) {
	tx, ok := server.textures[id]
	return tx, ok
}

// LoadTexture decodes a PNG file into an RGBA8 texture.
func (server *AssetServer) LoadTexture(filename string) (AssetId, error) {
	img, err := decodeImage(filename)
	if err != nil {
		return "", err
	}
	rgba := toNRGBA(img, img.Bounds().Dx(), img.Bounds().Dy())
	return server.createFromImage(rgba), nil
}

// LoadAtlas decodes a sprite sheet and resamples it so each of the columns x rows
// cells is exactly cellSize pixels square.
func (server *AssetServer) LoadAtlas(filename string, columns, rows, cellSize int) (AssetId, error) {
	img, err := decodeImage(filename)
	if err != nil {
		return "", err
	}
	rgba := toNRGBA(img, columns*cellSize, rows*cellSize)
	return server.createFromImage(rgba), nil
}

func (server *AssetServer) createFromImage(img *image.NRGBA) AssetId {
	b := img.Bounds()
	return server.CreateTexture(img.Pix, uint32(b.Dx()), uint32(b.Dy()), TextureFormatRGBA8Unorm)
}

func decodeImage(filename string) (image.Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", filename, err)
	}
	return img, nil
}

// toNRGBA converts img to straight alpha, scaling it when the target size differs.
func toNRGBA(img image.Image, width, height int) *image.NRGBA {
	bounds := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && bounds.Min == (image.Point{}) && bounds.Dx() == width && bounds.Dy() == height {
		return n
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	if bounds.Dx() == width && bounds.Dy() == height {
		draw.Copy(dst, image.Point{}, img, bounds, draw.Src, nil)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	}
	return dst
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
