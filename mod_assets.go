package mithril

import (
	"github.com/google/uuid"

	"github.com/daigennki/MithrilEngine/sky"
)

type AssetId string

// AssetServer owns CPU-side asset data. GPU uploads happen in the modules
// that consume the assets.
type AssetServer struct {
	meshes   map[AssetId]MeshAsset
	cubemaps map[AssetId]*sky.Cubemap
}

type AssetServerModule struct{}

// Mesh is a handle into the asset server.
type Mesh struct {
	assetId AssetId
}

// Cubemap is a handle to a loaded six-face sky texture.
type Cubemap struct {
	assetId AssetId
}

type MeshAsset struct {
	version  uint
	vertices []sky.SkyVertex
	indices  []uint16
}

func (server AssetServer) LoadMesh(vertices []sky.SkyVertex, indices []uint16) Mesh {
	id := makeAssetId()

	server.meshes[id] = MeshAsset{
		version:  0,
		vertices: vertices,
		indices:  indices,
	}

	return Mesh{
		assetId: id,
	}
}

// LoadCubemap decodes the six face images and registers them as one asset.
// Face order is +x, -x, +y, -y, +z, -z.
func (server AssetServer) LoadCubemap(paths [6]string) (Cubemap, error) {
	cm, err := sky.LoadCubemap(paths)
	if err != nil {
		return Cubemap{}, err
	}

	id := makeAssetId()
	server.cubemaps[id] = cm

	return Cubemap{
		assetId: id,
	}, nil
}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	app.addResources(&AssetServer{
		meshes:   make(map[AssetId]MeshAsset),
		cubemaps: make(map[AssetId]*sky.Cubemap),
	})
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
