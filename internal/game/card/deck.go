package card

import "math/rand/v2"

// Deck 定义一叠牌，语义上是双端队列：
// 队首是牌堆顶（摸牌、弃牌堆的最新一张），队尾是牌堆底
type Deck struct {
	cards []Card
}

// Empty 创建一叠空牌（用于弃牌堆）
func Empty() *Deck {
	return &Deck{}
}

// Full 创建标准 Uno 牌组，共 108 张：
// 红黄绿蓝每色 1 张 0、数字 1-9 与跳过/转向/+2 各 2 张（每色 19 张），
// 外加变色与变色+4 各 4 张
func Full() *Deck {
	d := Empty()

	for color := Red; color <= Blue; color++ {
		d.Insert(Card{Color: color, Value: Zero})
		for value := One; value <= DrawTwo; value++ {
			d.Insert(Card{Color: color, Value: value})
			d.Insert(Card{Color: color, Value: value})
		}
	}

	for i := 0; i < 4; i++ {
		d.Insert(Card{Color: Black, Value: Wild})
		d.Insert(Card{Color: Black, Value: WildFour})
	}

	return d
}

// Size 返回剩余牌数
func (d *Deck) Size() int {
	return len(d.cards)
}

// IsEmpty 牌堆是否已空
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Shuffle 均匀随机洗牌（Fisher-Yates）
func (d *Deck) Shuffle() {
	rand.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Insert 把一张牌放到牌堆底
func (d *Deck) Insert(c Card) {
	d.cards = append(d.cards, c)
}

// Add 把一张牌放到牌堆顶（弃牌堆用，堆顶即最近打出的牌）
func (d *Deck) Add(c Card) {
	d.cards = append([]Card{c}, d.cards...)
}

// Draw 从牌堆顶摸一张牌，牌堆为空时返回 false
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, true
}

// Top 查看牌堆顶的牌但不取走
func (d *Deck) Top() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	return d.cards[0], true
}
