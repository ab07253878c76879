// Package vector 提供推荐打分用到的稠密向量运算。
package vector

import "math"

// Cosine 计算两个向量的余弦相似度，结果收敛到 [-1, 1]。
// 任一向量缺失（nil/空）、长度不一致或范数为 0 时返回 0：
// 数据稀疏按零贡献处理，不是错误。
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	s := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// 浮点误差可能略越界，收敛到定义域
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}

// Centroid 计算向量集合的质心（逐维均值）。
// 空集合返回 nil；与首个向量长度不一致的向量被跳过。
func Centroid(vecs [][]float64) []float64 {
	var sum []float64
	n := 0
	for _, v := range vecs {
		if len(v) == 0 {
			continue
		}
		if sum == nil {
			sum = make([]float64, len(v))
		}
		if len(v) != len(sum) {
			continue
		}
		for i := range v {
			sum[i] += v[i]
		}
		n++
	}
	if n == 0 {
		return nil
	}
	for i := range sum {
		sum[i] /= float64(n)
	}
	return sum
}
