package filestore

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-archivo/internal/domain/entity"
	"github.com/jhoicas/tienda-archivo/internal/domain/repository"
)

var _ repository.CartRepository = (*CartStore)(nil)

const (
	cartsDir      = "carritos"
	cartsBaseName = "all_carritos"

	cartLineWidth  = 122
	cartBlockStart = "--- INICIO CARRITO ---"
	cartBlockEnd   = "--- FIN CARRITO ---"
	cartCodeLabel  = "Código: "
	cartOwnerLabel = "Usuario (Cédula): "
	cartTotalLabel = "Total: $"
	cartItemsLabel = "Items: "
	cartNoOwner    = "N/A"
)

// CartStore colección de carritos en carritos/all_carritos.{dat,txt}.
// La recuperación desde texto no reconstruye los items (solo están resumidos).
type CartStore struct {
	coll *collectionStore[entity.Cart, int]
}

// NewCartStore construye el store y crea <base>/carritos si no existe.
func NewCartStore(opts Options) (*CartStore, error) {
	coll, err := newCollectionStore[entity.Cart, int](opts, cartsDir, cartsBaseName, cartFormat{})
	if err != nil {
		return nil, err
	}
	return &CartStore{coll: coll}, nil
}

// Create asigna al carrito el siguiente código libre y reescribe la colección.
func (s *CartStore) Create(cart *entity.Cart) error {
	return s.coll.create(cart)
}

// GetByCode devuelve (nil, nil) si no existe.
func (s *CartStore) GetByCode(code int) (*entity.Cart, error) {
	return s.coll.find(code), nil
}

// ListByUser carritos cuyo dueño es userID.
func (s *CartStore) ListByUser(userID string) ([]*entity.Cart, error) {
	out := make([]*entity.Cart, 0)
	for _, c := range s.coll.listAll() {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

// Update reemplaza el carrito con el mismo código. Si no existe no hace nada.
func (s *CartStore) Update(cart *entity.Cart) error {
	return s.coll.update(cart)
}

// Delete elimina el carrito. Un código inexistente no es error.
func (s *CartStore) Delete(code int) error {
	return s.coll.delete(code)
}

// ListAll devuelve todos los carritos (desde texto si el snapshot no sirve).
func (s *CartStore) ListAll() ([]*entity.Cart, error) {
	return s.coll.listAll(), nil
}

type cartItemDoc struct {
	Product  productDoc `bson:"product"`
	Quantity int        `bson:"quantity"`
}

type cartDoc struct {
	Code      int           `bson:"code"`
	CreatedAt time.Time     `bson:"created_at"`
	UserID    string        `bson:"user_id"`
	Items     []cartItemDoc `bson:"items"`
}

type cartSnapshot struct {
	Header snapshotHeader `bson:",inline"`
	Carts  []cartDoc      `bson:"carts"`
}

type cartFormat struct{}

func (cartFormat) key(c *entity.Cart) int { return c.Code }

// validate: el código lo asigna el store y el dueño es opcional.
func (cartFormat) validate(*entity.Cart) error { return nil }

func (cartFormat) assignKey(items []*entity.Cart, c *entity.Cart) {
	c.Code = NextCode(items, func(it *entity.Cart) int { return it.Code })
}

func (cartFormat) encodeBinary(carts []*entity.Cart) ([]byte, error) {
	snap := cartSnapshot{Header: newHeader(kindCarts), Carts: make([]cartDoc, 0, len(carts))}
	for _, c := range carts {
		doc := cartDoc{Code: c.Code, CreatedAt: c.CreatedAt, UserID: c.UserID, Items: make([]cartItemDoc, 0, len(c.Items))}
		for _, it := range c.Items {
			p, err := toProductDoc(&it.Product)
			if err != nil {
				return nil, fmt.Errorf("carrito %d: %w", c.Code, err)
			}
			doc.Items = append(doc.Items, cartItemDoc{Product: p, Quantity: it.Quantity})
		}
		snap.Carts = append(snap.Carts, doc)
	}
	return encodeSnapshot(snap)
}

func (cartFormat) decodeBinary(data []byte) ([]*entity.Cart, error) {
	var snap cartSnapshot
	if err := decodeSnapshot(data, kindCarts, &snap); err != nil {
		return nil, err
	}
	out := make([]*entity.Cart, 0, len(snap.Carts))
	for _, doc := range snap.Carts {
		c := &entity.Cart{Code: doc.Code, CreatedAt: doc.CreatedAt, UserID: doc.UserID, Items: make([]entity.CartItem, 0, len(doc.Items))}
		for _, it := range doc.Items {
			p, err := it.Product.toEntity()
			if err != nil {
				return nil, err
			}
			c.Items = append(c.Items, entity.CartItem{Product: p, Quantity: it.Quantity})
		}
		out = append(out, c)
	}
	return out, nil
}

func (cartFormat) encodeText(carts []*entity.Cart) string {
	var sb strings.Builder
	for _, c := range carts {
		owner := c.UserID
		if owner == "" {
			owner = cartNoOwner
		}
		sb.WriteString(cartBlockStart + "\n")
		sb.WriteString(PadField(cartCodeLabel+strconv.Itoa(c.Code), cartLineWidth) + "\n")
		sb.WriteString(PadField(cartOwnerLabel+owner, cartLineWidth) + "\n")
		sb.WriteString(PadField(cartTotalLabel+c.Total().StringFixed(2), cartLineWidth) + "\n")
		sb.WriteString(PadField(cartItemsLabel+cartItemsSummary(c), cartLineWidth) + "\n")
		sb.WriteString(cartBlockEnd + "\n\n")
	}
	return sb.String()
}

func cartItemsSummary(c *entity.Cart) string {
	if len(c.Items) == 0 {
		return CartEmptySummary
	}
	pairs := make([]Pair, 0, len(c.Items))
	for _, it := range c.Items {
		pairs = append(pairs, Pair{First: it.Product.Name, Second: strconv.Itoa(it.Quantity)})
	}
	return EncodePairs(pairs)
}

// decodeText reconstruye código y dueño de cada bloque; los items quedan vacíos y CreatedAt en cero.
func (cartFormat) decodeText(text string, log zerolog.Logger) []*entity.Cart {
	var (
		out     []*entity.Cart
		block   []string
		inBlock bool
		startAt int
	)
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == cartBlockStart:
			if inBlock {
				log.Warn().Int("line", startAt).Msg("bloque de carrito sin cierre, se descarta")
			}
			inBlock, block, startAt = true, nil, i+1
		case line == cartBlockEnd:
			if !inBlock {
				log.Warn().Int("line", i+1).Msg("cierre de carrito sin apertura, se ignora")
				continue
			}
			inBlock = false
			c, err := parseCartBlock(block)
			if err != nil {
				log.Warn().Err(err).Int("line", startAt).Msg("bloque de carrito inválido, se descarta")
				continue
			}
			out = append(out, c)
		case inBlock:
			block = append(block, line)
		}
	}
	if inBlock {
		log.Warn().Int("line", startAt).Msg("bloque de carrito sin cierre al final del archivo, se descarta")
	}
	return out
}

func parseCartBlock(lines []string) (*entity.Cart, error) {
	c := &entity.Cart{Items: []entity.CartItem{}}
	hasCode := false
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, cartCodeLabel):
			code, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, cartCodeLabel)))
			if err != nil {
				return nil, fmt.Errorf("código: %w", err)
			}
			c.Code, hasCode = code, true
		case strings.HasPrefix(line, cartOwnerLabel):
			owner := strings.TrimSpace(strings.TrimPrefix(line, cartOwnerLabel))
			if owner != cartNoOwner {
				c.UserID = owner
			}
		}
	}
	if !hasCode {
		return nil, fmt.Errorf("falta la línea %q", strings.TrimSpace(cartCodeLabel))
	}
	return c, nil
}
