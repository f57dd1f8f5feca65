package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessRegistration(t *testing.T) {
	text := "사 업 자 등 록 증\n" +
		"등록번호: 123-45-67890\n" +
		"개업연월일: 2019년 03월 15일\n" +
		"본점소재지 서울특별시 강남구 테헤란로 123\n"

	rec := BusinessRegistration(text)

	assert.Equal(t, "2019년 03월 15일", rec.OpeningDateRaw)
	assert.Equal(t, "2019-03-15", rec.OpeningDate)
	assert.Equal(t, "서울특별시 강남구 테헤란로 123", rec.HeadOfficeAddress)
}

func TestBusinessRegistrationSplitKeyword(t *testing.T) {
	// OCR frequently breaks the label apart.
	text := "개업 연월일 2021년 7월 1일\n본점 소재지: 부산광역시 해운대구 센텀중앙로 45\n"

	rec := BusinessRegistration(text)

	assert.Equal(t, "2021년 7월 1일", rec.OpeningDateRaw)
	assert.Equal(t, "2021-07-01", rec.OpeningDate)
	assert.Equal(t, "부산광역시 해운대구 센텀중앙로 45", rec.HeadOfficeAddress)
}

func TestBusinessRegistrationProvinceFallback(t *testing.T) {
	// No address label at all; the whole-text province sweep picks the line up.
	text := "어쩌구 저쩌구\n경기도 성남시 분당구 판교로 256번길 25\n"

	rec := BusinessRegistration(text)

	assert.Equal(t, "경기도 성남시 분당구 판교로 256번길 25", rec.HeadOfficeAddress)
}

func TestBusinessRegistrationPrefersHeadOfficeLine(t *testing.T) {
	// Certificates carry a business-premises address above the head-office
	// one; only the labeled head-office line may win.
	text := "사업장소재지 서울특별시 강남구 테헤란로 123 5층\n" +
		"본점소재지: 부산광역시 해운대구 센텀중앙로 45\n"

	rec := BusinessRegistration(text)

	assert.Equal(t, "부산광역시 해운대구 센텀중앙로 45", rec.HeadOfficeAddress)
}

func TestBusinessRegistrationMangledLabelProvinceAnchor(t *testing.T) {
	// The label regex misses when OCR garbles the text between the morphemes,
	// but a line still carrying 본점 and 소재지 yields its province-anchored tail.
	text := "본점 의 소재지 대전광역시 유성구 대학로 99\n"

	rec := BusinessRegistration(text)

	assert.Equal(t, "대전광역시 유성구 대학로 99", rec.HeadOfficeAddress)
}

func TestBusinessRegistrationSweeps(t *testing.T) {
	t.Run("delimited date sweep rewrites to korean raw form", func(t *testing.T) {
		rec := BusinessRegistration("설립 2020.03.05 기타 내용")
		assert.Equal(t, "2020년 3월 5일", rec.OpeningDateRaw)
		assert.Equal(t, "2020-03-05", rec.OpeningDate)
	})

	t.Run("nothing found leaves fields absent", func(t *testing.T) {
		rec := BusinessRegistration("아무 정보도 없는 문서")
		assert.Empty(t, rec.OpeningDateRaw)
		assert.Empty(t, rec.OpeningDate)
		assert.Empty(t, rec.HeadOfficeAddress)
	})
}

func TestBusinessRegistrationPure(t *testing.T) {
	text := "개업연월일: 2019년 03월 15일\n본점소재지 서울특별시 강남구 테헤란로 123\n"
	assert.Equal(t, BusinessRegistration(text), BusinessRegistration(text))
}

func TestCompanyNameFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{
			name:     "certificate token with underscores",
			filename: "서류_사업자등록증_핀렌즈_2024.pdf",
			expected: "핀렌즈",
		},
		{
			name:     "certificate token at start",
			filename: "사업자등록증_테크컴퍼니.pdf",
			expected: "테크컴퍼니",
		},
		{
			name:     "no token falls back to first segment",
			filename: "핀렌즈_제출서류.pdf",
			expected: "핀렌즈",
		},
		{
			name:     "plain stem",
			filename: "company.pdf",
			expected: "company",
		},
		{
			name:     "path is stripped",
			filename: "/tmp/uploads/사업자등록증_메디케어_v2.pdf",
			expected: "메디케어",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompanyNameFromFilename(tt.filename))
		})
	}
}
