package filestore

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/tienda-archivo/internal/domain"
	"github.com/jhoicas/tienda-archivo/internal/domain/entity"
)

// Formato del snapshot binario: un frame zstd (con CRC) que contiene un documento BSON.
// Todo documento lleva kind y v; si no coinciden se trata igual que un archivo ilegible.
const snapshotVersion = 1

const (
	kindProduct = "producto"
	kindCarts   = "carritos"
	kindUsers   = "usuarios"
)

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderCRC(true))
	if err != nil {
		panic("filestore: zstd encoder: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("filestore: zstd decoder: " + err.Error())
	}
}

type snapshotHeader struct {
	Kind    string `bson:"kind"`
	Version int    `bson:"v"`
}

func newHeader(kind string) snapshotHeader {
	return snapshotHeader{Kind: kind, Version: snapshotVersion}
}

// encodeSnapshot serializa doc (struct con snapshotHeader inline) a BSON comprimido.
func encodeSnapshot(doc any) ([]byte, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("bson marshal: %w", err)
	}
	return zstdEncoder.EncodeAll(raw, make([]byte, 0, len(raw)/2)), nil
}

// decodeSnapshot valida el frame y la cabecera antes de decodificar en doc.
// Cualquier fallo se devuelve envuelto en domain.ErrCorruptSnapshot.
func decodeSnapshot(data []byte, kind string, doc any) error {
	raw, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return fmt.Errorf("%w: zstd: %v", domain.ErrCorruptSnapshot, err)
	}
	var h snapshotHeader
	if err := bson.Unmarshal(raw, &h); err != nil {
		return fmt.Errorf("%w: cabecera: %v", domain.ErrCorruptSnapshot, err)
	}
	if h.Kind != kind || h.Version != snapshotVersion {
		return fmt.Errorf("%w: se esperaba %s v%d, se encontró %q v%d",
			domain.ErrCorruptSnapshot, kind, snapshotVersion, h.Kind, h.Version)
	}
	if err := bson.Unmarshal(raw, doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCorruptSnapshot, err)
	}
	return nil
}

type productDoc struct {
	Code  int                  `bson:"code"`
	Name  string               `bson:"name"`
	Price primitive.Decimal128 `bson:"price"`
}

type productSnapshot struct {
	Header  snapshotHeader `bson:",inline"`
	Product productDoc     `bson:"product"`
}

func toProductDoc(p *entity.Product) (productDoc, error) {
	price, err := primitive.ParseDecimal128(p.Price.String())
	if err != nil {
		return productDoc{}, fmt.Errorf("precio %s: %w", p.Price, err)
	}
	return productDoc{Code: p.Code, Name: p.Name, Price: price}, nil
}

func (d productDoc) toEntity() (entity.Product, error) {
	price, err := decimal.NewFromString(d.Price.String())
	if err != nil {
		return entity.Product{}, fmt.Errorf("%w: precio %q", domain.ErrCorruptSnapshot, d.Price.String())
	}
	return entity.Product{Code: d.Code, Name: d.Name, Price: price}, nil
}
