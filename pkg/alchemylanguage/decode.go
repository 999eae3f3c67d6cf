package alchemylanguage

import "alchemy/pkg/watson/decode"

// The primary collection of each ranked response (keywords, entities,
// concepts) is required. Everything else is optional.

func decodeResponseInfo(v decode.Value) ResponseInfo {
	return ResponseInfo{
		Status:            v.OptString("status"),
		URL:               v.OptString("url"),
		Language:          v.OptString("language"),
		TotalTransactions: v.OptIntString("totalTransactions"),
	}
}

func decodeSentiment(v decode.Value) (Sentiment, error) {
	if _, err := v.AsObject(); err != nil {
		return Sentiment{}, err
	}
	return Sentiment{
		Mixed: v.OptIntString("mixed"),
		Score: v.OptFloatString("score"),
		Type:  v.OptString("type"),
	}, nil
}

func decodeKnowledgeGraph(v decode.Value) (KnowledgeGraph, error) {
	if _, err := v.AsObject(); err != nil {
		return KnowledgeGraph{}, err
	}
	return KnowledgeGraph{TypeHierarchy: v.OptString("typeHierarchy")}, nil
}

func decodeKeyword(v decode.Value) (Keyword, error) {
	if _, err := v.AsObject(); err != nil {
		return Keyword{}, err
	}
	return Keyword{
		Text:           v.OptString("text"),
		Relevance:      v.OptFloatString("relevance"),
		Sentiment:      decode.Optional(v, "sentiment", decodeSentiment),
		KnowledgeGraph: decode.Optional(v, "knowledgeGraph", decodeKnowledgeGraph),
	}, nil
}

// DecodeKeywords decodes a ranked keywords response.
func DecodeKeywords(v decode.Value) (Keywords, error) {
	keywords, err := decode.List(v, "keywords", decodeKeyword)
	if err != nil {
		return Keywords{}, err
	}
	return Keywords{ResponseInfo: decodeResponseInfo(v), Keywords: keywords}, nil
}

func decodeDisambiguation(v decode.Value) (Disambiguation, error) {
	if _, err := v.AsObject(); err != nil {
		return Disambiguation{}, err
	}
	return Disambiguation{
		Name:     v.OptString("name"),
		SubType:  decode.OptList(v, "subType", decode.Value.AsString),
		Website:  v.OptString("website"),
		Geo:      v.OptString("geo"),
		DBpedia:  v.OptString("dbpedia"),
		Freebase: v.OptString("freebase"),
		Yago:     v.OptString("yago"),
		OpenCyc:  v.OptString("opencyc"),
	}, nil
}

func decodeEntity(v decode.Value) (Entity, error) {
	if _, err := v.AsObject(); err != nil {
		return Entity{}, err
	}
	return Entity{
		Type:           v.OptString("type"),
		Text:           v.OptString("text"),
		Relevance:      v.OptFloatString("relevance"),
		Count:          v.OptIntString("count"),
		Sentiment:      decode.Optional(v, "sentiment", decodeSentiment),
		KnowledgeGraph: decode.Optional(v, "knowledgeGraph", decodeKnowledgeGraph),
		Disambiguated:  decode.Optional(v, "disambiguated", decodeDisambiguation),
	}, nil
}

// DecodeEntities decodes a ranked named entities response.
func DecodeEntities(v decode.Value) (Entities, error) {
	entities, err := decode.List(v, "entities", decodeEntity)
	if err != nil {
		return Entities{}, err
	}
	return Entities{ResponseInfo: decodeResponseInfo(v), Entities: entities}, nil
}

func decodeConcept(v decode.Value) (Concept, error) {
	if _, err := v.AsObject(); err != nil {
		return Concept{}, err
	}
	return Concept{
		Text:           v.OptString("text"),
		Relevance:      v.OptFloatString("relevance"),
		KnowledgeGraph: decode.Optional(v, "knowledgeGraph", decodeKnowledgeGraph),
		Website:        v.OptString("website"),
		Geo:            v.OptString("geo"),
		DBpedia:        v.OptString("dbpedia"),
		Freebase:       v.OptString("freebase"),
		Yago:           v.OptString("yago"),
		OpenCyc:        v.OptString("opencyc"),
		CIAFactbook:    v.OptString("ciaFactbook"),
		Census:         v.OptString("census"),
		Geonames:       v.OptString("geonames"),
		MusicBrainz:    v.OptString("musicBrainz"),
		CrunchBase:     v.OptString("crunchbase"),
	}, nil
}

// DecodeConcepts decodes a ranked concepts response.
func DecodeConcepts(v decode.Value) (ConceptResponse, error) {
	concepts, err := decode.List(v, "concepts", decodeConcept)
	if err != nil {
		return ConceptResponse{}, err
	}
	return ConceptResponse{ResponseInfo: decodeResponseInfo(v), Concepts: concepts}, nil
}

func decodeAuthors(v decode.Value) (Authors, error) {
	if _, err := v.AsObject(); err != nil {
		return Authors{}, err
	}
	return Authors{
		Confident: v.OptBoolString("confident"),
		Names:     decode.OptList(v, "names", decode.Value.AsString),
	}, nil
}

// DecodeDocumentAuthors decodes an author extraction response.
func DecodeDocumentAuthors(v decode.Value) (DocumentAuthors, error) {
	if _, err := v.AsObject(); err != nil {
		return DocumentAuthors{}, err
	}
	return DocumentAuthors{
		ResponseInfo: decodeResponseInfo(v),
		Authors:      decode.Optional(v, "authors", decodeAuthors),
	}, nil
}

// DecodeLanguage decodes a language detection response.
func DecodeLanguage(v decode.Value) (Language, error) {
	if _, err := v.AsObject(); err != nil {
		return Language{}, err
	}
	return Language{
		ResponseInfo:   decodeResponseInfo(v),
		ISO6391:        v.OptString("iso-639-1"),
		ISO6392:        v.OptString("iso-639-2"),
		ISO6393:        v.OptString("iso-639-3"),
		Ethnologue:     v.OptString("ethnologue"),
		NativeSpeakers: v.OptString("native-speakers"),
		Wikipedia:      v.OptString("wikipedia"),
	}, nil
}

func decodeMicroformat(v decode.Value) (Microformat, error) {
	if _, err := v.AsObject(); err != nil {
		return Microformat{}, err
	}
	return Microformat{Field: v.OptString("field"), Data: v.OptString("data")}, nil
}

// DecodeMicroformats decodes a microformat extraction response.
func DecodeMicroformats(v decode.Value) (Microformats, error) {
	if _, err := v.AsObject(); err != nil {
		return Microformats{}, err
	}
	return Microformats{
		ResponseInfo: decodeResponseInfo(v),
		Microformats: decode.OptList(v, "microformats", decodeMicroformat),
	}, nil
}

func decodePublicationDate(v decode.Value) (PublicationDate, error) {
	if _, err := v.AsObject(); err != nil {
		return PublicationDate{}, err
	}
	return PublicationDate{
		Date:      v.OptString("date"),
		Confident: v.OptBoolString("confident"),
	}, nil
}

// DecodePublication decodes a publication date response.
func DecodePublication(v decode.Value) (PublicationResponse, error) {
	if _, err := v.AsObject(); err != nil {
		return PublicationResponse{}, err
	}
	return PublicationResponse{
		ResponseInfo:    decodeResponseInfo(v),
		PublicationDate: decode.Optional(v, "publicationDate", decodePublicationDate),
	}, nil
}

// DecodeDocumentSentiment decodes a document sentiment response.
func DecodeDocumentSentiment(v decode.Value) (DocumentSentiment, error) {
	if _, err := v.AsObject(); err != nil {
		return DocumentSentiment{}, err
	}
	return DocumentSentiment{
		ResponseInfo: decodeResponseInfo(v),
		DocSentiment: decode.Optional(v, "docSentiment", decodeSentiment),
	}, nil
}
