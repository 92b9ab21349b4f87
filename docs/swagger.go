package docs

// @title HR 면담 분석 API
// @version 1.0
// @description HR 면담 텍스트의 키워드 추출, 인사이동 희망 분석, 추천안 생성 서비스

// @contact.name API Support

// @host localhost:8000
// @BasePath /
// @schemes http https
