package searchers

import "github.com/kittclouds/searus/pkg/filter"

type doc struct {
	title  string
	body   string
	tags   []string
	price  float64
	vector []float32
}

func docToAttr(d doc) filter.AttrNode {
	tagNodes := make([]filter.AttrNode, len(d.tags))
	for i, tg := range d.tags {
		tagNodes[i] = filter.AttrNode{Kind: filter.KindString, String: tg}
	}
	vecNodes := make([]filter.AttrNode, len(d.vector))
	for i, v := range d.vector {
		vecNodes[i] = filter.AttrNode{Kind: filter.KindNumber, Number: float64(v)}
	}
	return filter.AttrNode{
		Kind: filter.KindObject,
		Object: map[string]filter.AttrNode{
			"title":  {Kind: filter.KindString, String: d.title},
			"body":   {Kind: filter.KindString, String: d.body},
			"tags":   {Kind: filter.KindArray, Array: tagNodes},
			"price":  {Kind: filter.KindNumber, Number: d.price},
			"vector": {Kind: filter.KindArray, Array: vecNodes},
		},
	}
}
