package model

// Rarity - уровень редкости предмета
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rarities - все уровни редкости по возрастанию
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

// Rank возвращает позицию редкости в упорядоченном перечислении, -1 для неизвестной
func (r Rarity) Rank() int {
	for i, rr := range Rarities {
		if rr == r {
			return i
		}
	}
	return -1
}

// Item - предмет-награда. Неизменяем после того, как на него сослалась хотя бы одна запись розыгрыша
type Item struct {
	ID     string
	Name   string
	Rarity Rarity
	Value  int
}

// PoolEntry - предмет кейса с явным весом из каталога
type PoolEntry struct {
	Item   Item
	Weight int
}

// Pool - кейс: набор предметов, цена открытия и флаг доступности
type Pool struct {
	ID      int
	Name    string
	Price   int
	Enabled bool
	Entries []PoolEntry
}

// Items возвращает предметы кейса в порядке каталога
func (p Pool) Items() []Item {
	items := make([]Item, len(p.Entries))
	for i, e := range p.Entries {
		items[i] = e.Item
	}
	return items
}

// Item ищет предмет кейса по идентификатору
func (p Pool) Item(id string) (Item, bool) {
	for _, e := range p.Entries {
		if e.Item.ID == id {
			return e.Item, true
		}
	}
	return Item{}, false
}

// Odds - вероятность выпадения предмета
type Odds struct {
	Item        Item
	Probability float64
}
